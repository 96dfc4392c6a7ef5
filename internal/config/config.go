// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable the server reads at startup.
type Config struct {
	Port         string `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"authbox.db"`

	// SessionSecret signs the session cookie. HMAC-SHA256 needs at
	// least 32 bytes of key material.
	SessionSecret string        `env:"SESSION_SECRET,required"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	BcryptCost   int  `env:"BCRYPT_COST" envDefault:"12"`
	CookieSecure bool `env:"COOKIE_SECURE" envDefault:"true"`

	// Login rate limit: LoginRateMax attempts per client IP within
	// LoginRateWindow. Applied as HTTP middleware, outside the auth
	// core.
	LoginRateMax    int           `env:"LOGIN_RATE_MAX" envDefault:"5"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"15m"`

	SeedUsers bool `env:"SEED_USERS" envDefault:"true"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that struct tags cannot express.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.LoginRateMax < 1 {
		return fmt.Errorf("LOGIN_RATE_MAX must be at least 1, got %d", c.LoginRateMax)
	}
	return nil
}
