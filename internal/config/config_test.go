package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, 8, cfg.Forecast.LookbackWeeks)
	assert.Equal(t, 0.25, cfg.Forecast.MinConfidence)
	assert.True(t, cfg.Forecast.ApplyToEmptyOnly)
	assert.Equal(t, 5*time.Second, cfg.Forecast.QueryTimeout)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
port: 8181
log_level: debug
database:
  driver: postgres
  url: postgres://kitchen@localhost/orders
metrics:
  enabled: false
forecast:
  lookback_weeks: 12
  min_confidence: 0.5
  apply_to_empty_only: false
  query_timeout: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, 12, cfg.Forecast.LookbackWeeks)
	assert.Equal(t, 0.5, cfg.Forecast.MinConfidence)
	assert.False(t, cfg.Forecast.ApplyToEmptyOnly)
	assert.Equal(t, 2*time.Second, cfg.Forecast.QueryTimeout)
	// untouched keys keep their defaults
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: 8181\n")
	t.Setenv("PORT", "9191")
	t.Setenv("DATABASE_URL", ":memory:")
	t.Setenv("FORECAST_LOOKBACK_WEEKS", "4")
	t.Setenv("LOG_PRETTY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, ":memory:", cfg.Database.URL)
	assert.Equal(t, 4, cfg.Forecast.LookbackWeeks)
	assert.True(t, cfg.LogPretty)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("FORECAST_MIN_CONFIDENCE", "high")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_LookbackEnvAboveCap(t *testing.T) {
	t.Setenv("FORECAST_LOOKBACK_WEEKS", "200000")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "port: [not a number\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Port = 0 }},
		{"bad metrics port", func(c *Config) { c.Metrics.Port = 70000 }},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }},
		{"empty url", func(c *Config) { c.Database.URL = "" }},
		{"no lookback", func(c *Config) { c.Forecast.LookbackWeeks = 0 }},
		{"lookback above a year", func(c *Config) { c.Forecast.LookbackWeeks = 53 }},
		{"confidence above one", func(c *Config) { c.Forecast.MinConfidence = 1.5 }},
	}

	assert.NoError(t, Default().Validate())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
