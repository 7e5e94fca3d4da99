package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/MrJamesThe3rd/invoiceqc/internal/validation"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Invoice QC"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"10485760"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Validation struct {
		Workers int `envconfig:"VALIDATION_WORKERS" default:"0"`
		// ReferenceDate pins "today" for the invoice date range check.
		// Empty means the system clock.
		ReferenceDate string `envconfig:"VALIDATION_REFERENCE_DATE"`
	}
}

// Clock returns the reference clock for the validator.
func (c *Config) Clock() (validation.Clock, error) {
	return ParseClock(c.Validation.ReferenceDate)
}

// ParseClock turns an optional YYYY-MM-DD date into a validation clock.
func ParseClock(referenceDate string) (validation.Clock, error) {
	if referenceDate == "" {
		return validation.SystemClock{}, nil
	}

	t, err := time.Parse(time.DateOnly, referenceDate)
	if err != nil {
		return nil, fmt.Errorf("parse reference date: %w", err)
	}

	return validation.FixedClock(t), nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if _, err := cfg.Clock(); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
