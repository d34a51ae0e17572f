// Package config centralises configuration parsing for the activities service.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config captures runtime configuration values for the activities service.
type Config struct {
	HTTPAddress     string        `env:"ACTIVITIES_HTTP_ADDRESS"     envDefault:":8000"`
	LogLevel        string        `env:"ACTIVITIES_LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"ACTIVITIES_LOG_FORMAT"       envDefault:"json"`
	GinMode         string        `env:"ACTIVITIES_GIN_MODE"         envDefault:"release"`
	SeedFile        string        `env:"ACTIVITIES_SEED_FILE"`
	CORSOrigin      string        `env:"ACTIVITIES_CORS_ORIGIN"      envDefault:"*"`
	MetricsEnabled  bool          `env:"ACTIVITIES_METRICS_ENABLED"  envDefault:"true"`
	ReadTimeout     time.Duration `env:"ACTIVITIES_READ_TIMEOUT"     envDefault:"5s"`
	WriteTimeout    time.Duration `env:"ACTIVITIES_WRITE_TIMEOUT"    envDefault:"10s"`
	IdleTimeout     time.Duration `env:"ACTIVITIES_IDLE_TIMEOUT"     envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"ACTIVITIES_SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load reads an optional .env file, then parses environment variables into Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return Parse()
}

// Parse reads Config from the process environment only.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	switch c.GinMode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("unknown gin mode %q", c.GinMode)
	}
	if c.HTTPAddress == "" {
		return errors.New("http address is required")
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 || c.IdleTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}
	return nil
}
