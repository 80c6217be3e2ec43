package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestRegisteredDocListsRoutes(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		BasePath    string                                `json:"basePath"`
		Paths       map[string]map[string]json.RawMessage `json:"paths"`
		Definitions map[string]json.RawMessage            `json:"definitions"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))

	assert.Equal(t, "/api", spec.BasePath)
	for path, method := range map[string]string{
		"/internal/pnl":               "get",
		"/internal/snapshots":         "post",
		"/internal/transaction-legs":  "get",
		"/users/{userId}/dashboard":   "get",
		"/users/{userId}/metrics":     "get",
		"/users/{userId}/earnings":    "get",
		"/transactions":               "post",
		"/reporting/monthly-expenses": "get",
	} {
		require.Contains(t, spec.Paths, path)
		assert.Contains(t, spec.Paths[path], method, path)
	}
	for _, name := range []string{"handlers.ErrorResponse", "models.Dashboard", "models.PerformanceMetrics", "models.TransactionRequest"} {
		assert.Contains(t, spec.Definitions, name)
	}
}
