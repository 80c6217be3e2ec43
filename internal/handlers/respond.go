package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tropicaldog17/folio/internal/auth"
	apperrors "github.com/tropicaldog17/folio/internal/errors"
	"github.com/tropicaldog17/folio/internal/logger"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to its status and public message. Upstream and internal
// failures are logged with their cause; the client only sees a generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperrors.KindOf(err)
	status := apperrors.StatusCode(kind)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			zap.String("kind", kind.String()),
			zap.Error(err))
	}
	writeJSON(w, status, ErrorResponse{Error: apperrors.PublicMessage(err)})
}

// badRequest answers 400 with a message written for the client.
func badRequest(w http.ResponseWriter, r *http.Request, message string) {
	writeError(w, r, apperrors.Validation(message))
}

// setCacheHeaders marks a per-user report as cacheable by the client. Demo
// data is shared by every anonymous visitor and may be cached publicly.
func setCacheHeaders(w http.ResponseWriter, p *auth.Principal) {
	scope := "private"
	if p != nil && p.Demo {
		scope = "public"
	}
	w.Header().Set("Cache-Control", scope+", max-age=1800, stale-while-revalidate=360")
	w.Header().Add("Vary", "Authorization")
}
