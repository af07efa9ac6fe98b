package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all service settings, populated from environment variables.
// FARS_DATA_DIR defaults to the working directory, preserving the
// convention that accident files are resolved relative to where the process
// runs.
type Config struct {
	DataDir string `env:"FARS_DATA_DIR" envDefault:"."`
	MapDir  string `env:"FARS_MAP_DIR" envDefault:"."`

	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"json"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Map geometry in inches.
	MapWidth  float64 `env:"MAP_WIDTH_IN" envDefault:"8"`
	MapHeight float64 `env:"MAP_HEIGHT_IN" envDefault:"6"`
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.DataDir == "" {
		return nil, errors.New("FARS_DATA_DIR must not be empty")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q (want json or text)", cfg.LogFormat)
	}
	if cfg.MapWidth <= 0 || cfg.MapHeight <= 0 {
		return nil, errors.New("MAP_WIDTH_IN and MAP_HEIGHT_IN must be positive")
	}

	return &cfg, nil
}
