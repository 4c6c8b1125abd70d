// Package config provides configuration management functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"kitchenorders/internal/forecast"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Port      int            `yaml:"port"`
	LogLevel  string         `yaml:"log_level"`
	LogPretty bool           `yaml:"log_pretty"`
	Database  DatabaseConfig `yaml:"database"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	Forecast  ForecastConfig `yaml:"forecast"`
}

// DatabaseConfig selects the order store
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
}

// MetricsConfig configures the prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// ForecastConfig holds the default suggestion options
type ForecastConfig struct {
	LookbackWeeks    int           `yaml:"lookback_weeks"`
	MinConfidence    float64       `yaml:"min_confidence"`
	ApplyToEmptyOnly bool          `yaml:"apply_to_empty_only"`
	QueryTimeout     time.Duration `yaml:"query_timeout"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Port:     8080,
		LogLevel: "info",
		Database: DatabaseConfig{
			Driver: "sqlite3",
			URL:    "kitchenorders.db",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Port:    9090,
			Path:    "/metrics",
		},
		Forecast: ForecastConfig{
			LookbackWeeks:    8,
			MinConfidence:    0.25,
			ApplyToEmptyOnly: true,
			QueryTimeout:     5 * time.Second,
		},
	}
}

// Load builds the configuration from defaults, an optional yaml file, an
// optional .env file and the environment, in increasing precedence.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %w", err)
		}
		c.Port = port
	}
	if v := os.Getenv("METRICS_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_PORT: %w", err)
		}
		c.Metrics.Port = port
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid LOG_PRETTY: %w", err)
		}
		c.LogPretty = pretty
	}
	if v := os.Getenv("FORECAST_LOOKBACK_WEEKS"); v != "" {
		weeks, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FORECAST_LOOKBACK_WEEKS: %w", err)
		}
		c.Forecast.LookbackWeeks = weeks
	}
	if v := os.Getenv("FORECAST_MIN_CONFIDENCE"); v != "" {
		confidence, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid FORECAST_MIN_CONFIDENCE: %w", err)
		}
		c.Forecast.MinConfidence = confidence
	}
	return nil
}

// Validate checks the configuration for values the service cannot run with
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Metrics.Enabled && (c.Metrics.Port < 1 || c.Metrics.Port > 65535) {
		return fmt.Errorf("invalid metrics port: %d", c.Metrics.Port)
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("database url is required")
	}
	if err := forecast.ValidateLookbackWeeks(c.Forecast.LookbackWeeks); err != nil {
		return err
	}
	if c.Forecast.MinConfidence < 0 || c.Forecast.MinConfidence > 1 {
		return fmt.Errorf("min confidence must be within [0,1], got %v", c.Forecast.MinConfidence)
	}
	return nil
}
