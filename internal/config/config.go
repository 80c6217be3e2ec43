package config

import (
	"fmt"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tropicaldog17/folio/internal/db"
)

// Config holds application configuration
type Config struct {
	Port   string
	AppEnv string
	LogEnv string

	// InternalSecret is the shared bearer secret for /api/internal routes.
	InternalSecret string
	// SessionSecret verifies HS256 session access tokens.
	SessionSecret string
	// DemoUserID is the profile that anonymous sessions are allowed to read.
	DemoUserID string

	Database *db.Config

	SnapshotSchedule string
	SnapshotsEnabled bool

	RiskFreeRate       float64
	ChartThreshold     int
	UserChartThreshold int
}

var defaults = map[string]any{
	"SERVER_PORT":          "8080",
	"APP_ENV":              "development",
	"DB_HOST":              "localhost",
	"DB_PORT":              "5433",
	"DB_USER":              "folio_user",
	"DB_PASSWORD":          "folio_password",
	"DB_NAME":              "folio",
	"DB_SSL_MODE":          "disable",
	"SNAPSHOT_SCHEDULE":    "0 30 17 * * *",
	"SNAPSHOTS_ENABLED":    true,
	"RISK_FREE_RATE":       0.055,
	"CHART_THRESHOLD":      150,
	"USER_CHART_THRESHOLD": 200,
}

// Load reads configuration from the environment, after loading .env if present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// Secrets have no default but must still resolve through AutomaticEnv.
	for _, key := range []string{"LOG_ENV", "MY_APP_SECRET", "SUPABASE_JWT_SECRET", "DEMO_USER_ID"} {
		_ = v.BindEnv(key)
	}
	v.AutomaticEnv()
	return v
}

// FromViper builds a Config from an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:           v.GetString("SERVER_PORT"),
		AppEnv:         v.GetString("APP_ENV"),
		LogEnv:         v.GetString("LOG_ENV"),
		InternalSecret: v.GetString("MY_APP_SECRET"),
		SessionSecret:  v.GetString("SUPABASE_JWT_SECRET"),
		DemoUserID:     v.GetString("DEMO_USER_ID"),
		Database: &db.Config{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
		},
		SnapshotSchedule:   v.GetString("SNAPSHOT_SCHEDULE"),
		SnapshotsEnabled:   v.GetBool("SNAPSHOTS_ENABLED"),
		RiskFreeRate:       v.GetFloat64("RISK_FREE_RATE"),
		ChartThreshold:     v.GetInt("CHART_THRESHOLD"),
		UserChartThreshold: v.GetInt("USER_CHART_THRESHOLD"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail later at first use.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("SERVER_PORT must be numeric, got %q", c.Port)
	}
	if c.RiskFreeRate < 0 {
		return fmt.Errorf("RISK_FREE_RATE must be non-negative, got %v", c.RiskFreeRate)
	}
	if c.ChartThreshold <= 0 || c.UserChartThreshold <= 0 {
		return fmt.Errorf("chart thresholds must be positive")
	}
	return nil
}

// Env returns the logging environment: LOG_ENV, falling back to APP_ENV.
func (c *Config) Env() string {
	if c.LogEnv != "" {
		return c.LogEnv
	}
	return c.AppEnv
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
