package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "0 30 17 * * *", cfg.SnapshotSchedule)
	assert.True(t, cfg.SnapshotsEnabled)
	assert.InDelta(t, 0.055, cfg.RiskFreeRate, 1e-12)
	assert.Equal(t, 150, cfg.ChartThreshold)
	assert.Equal(t, 200, cfg.UserChartThreshold)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestFromViper_Environment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MY_APP_SECRET", "s3cret")
	t.Setenv("SUPABASE_JWT_SECRET", "jwt-secret")
	t.Setenv("DEMO_USER_ID", "demo")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SNAPSHOTS_ENABLED", "false")
	t.Setenv("DB_HOST", "db.internal")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "s3cret", cfg.InternalSecret)
	assert.Equal(t, "jwt-secret", cfg.SessionSecret)
	assert.Equal(t, "demo", cfg.DemoUserID)
	assert.Equal(t, "production", cfg.Env())
	assert.False(t, cfg.SnapshotsEnabled)
	assert.Equal(t, "db.internal", cfg.Database.Host)
}

func TestFromViper_LogEnvOverridesAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("LOG_ENV", "development")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env())
}

func TestFromViper_Invalid(t *testing.T) {
	t.Setenv("SERVER_PORT", "http")
	_, err := FromViper(newViper())
	assert.Error(t, err)
}

func TestFromViper_MissingSecretsStayEmpty(t *testing.T) {
	t.Setenv("MY_APP_SECRET", "")
	cfg, err := FromViper(newViper())
	require.NoError(t, err)
	assert.Empty(t, cfg.InternalSecret)
}
