package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Account service
	Endpoint string        `env:"TRANSFER_ENDPOINT" envDefault:"http://localhost:8123/"`
	Timeout  time.Duration `env:"TIMEOUT"           envDefault:"5s"`
	DryRun   bool          `env:"DRY_RUN"           envDefault:"true"`

	// Authentication (optional - leave username empty to skip the token flow)
	AuthUsername string `env:"AUTH_USERNAME" envDefault:""`
	AuthPassword string `env:"AUTH_PASSWORD" envDefault:""`
	AuthClaim    string `env:"AUTH_CLAIM"    envDefault:"enquiry"`

	// Retries (idempotent GET steps only)
	RetryEnabled bool `env:"RETRY_ENABLED" envDefault:"false"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
