package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration options for the workload engine.
// Values cascade: defaults, then WE_* environment variables.
type Config struct {
	Database  DatabaseConfig
	Cost      CostConfig
	Forecast  ForecastConfig
	Alerts    AlertConfig
	Log       LogConfig
	Directory DirectoryConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir      string `env:"WE_DB_DIR"`
	Filename string `env:"WE_DB_FILENAME, default=workload.db"`
}

// CostConfig holds the cost-model constants
type CostConfig struct {
	OverheadFactor    float64 `env:"WE_COST_OVERHEAD_FACTOR, default=1.7"`
	WeeksPerMonth     float64 `env:"WE_COST_WEEKS_PER_MONTH, default=4.33"`
	MinimumHourlyRate float64 `env:"WE_COST_MINIMUM_RATE, default=50"`
}

// ForecastConfig holds forecast defaults
type ForecastConfig struct {
	WeeksAhead int `env:"WE_FORECAST_WEEKS, default=8"`
}

// AlertConfig holds alert thresholds
type AlertConfig struct {
	ForgottenTimerMinutes int `env:"WE_ALERT_FORGOTTEN_TIMER_MINUTES, default=240"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level   string `env:"WE_LOG_LEVEL, default=info"`
	Console bool   `env:"WE_LOG_CONSOLE, default=false"`
}

// DirectoryConfig points at the exported dashboard snapshot the engine
// reads its project/task/roster records from.
type DirectoryConfig struct {
	File string `env:"WE_DIRECTORY_FILE"`
}

// Load builds the configuration from defaults and environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}

	if cfg.Database.Dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.Database.Dir = filepath.Join(homeDir, ".workload-engine")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DatabasePath returns the full path to the database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// EnsureDatabaseDir creates the database directory if it does not exist
func (c *Config) EnsureDatabaseDir() error {
	return os.MkdirAll(c.Database.Dir, 0o755)
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Cost.OverheadFactor <= 0 {
		return &ConfigError{Field: "cost.overhead_factor", Message: "overhead factor must be positive"}
	}
	if c.Cost.WeeksPerMonth <= 0 {
		return &ConfigError{Field: "cost.weeks_per_month", Message: "weeks per month must be positive"}
	}
	if c.Cost.MinimumHourlyRate < 0 {
		return &ConfigError{Field: "cost.minimum_rate", Message: "minimum rate cannot be negative"}
	}
	if c.Forecast.WeeksAhead < 1 {
		return &ConfigError{Field: "forecast.weeks_ahead", Message: "forecast horizon must be at least one week"}
	}
	if c.Alerts.ForgottenTimerMinutes < 1 {
		return &ConfigError{Field: "alerts.forgotten_timer_minutes", Message: "forgotten timer threshold must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
