// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Once loaded, configuration is read-only and passed to components through
their constructors.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/tagbook/pkg/locale"
)

// # Configuration Schema

// Config holds all runtime configuration for the Tagbook API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./migrations"`

	// RedisURL backs the shared rate limiter. Empty means per-process limiting.
	RedisURL string `env:"REDIS_URL"`

	// DefaultLocale is used for tag names submitted without a locale.
	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en"`

	// JWTPubKeyPath enables the write guard when set.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"tagbook"`

	// Rate limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// TrustProxyHeaders honors X-Real-IP / X-Forwarded-For for the client
	// address. Enable only behind a proxy that overwrites those headers.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	// Cross-Origin Resource Sharing
	ExtraOrigins []string `env:"EXTRA_ORIGINS" envSeparator:","`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field rules that struct tags cannot express and
// canonicalizes the default locale.
func (c *Config) Validate() error {
	canonical, err := locale.Parse(c.DefaultLocale)
	if err != nil {
		return fmt.Errorf("config: DEFAULT_LOCALE %q: %w", c.DefaultLocale, err)
	}
	c.DefaultLocale = canonical

	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("config: rate limit must be positive (rps=%v burst=%d)", c.RateLimitRPS, c.RateLimitBurst)
	}

	for i, origin := range c.ExtraOrigins {
		c.ExtraOrigins[i] = strings.TrimSpace(origin)
	}

	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins returns the extra CORS origins accepted outside development.
func (c *Config) AllowedOrigins() []string {
	return c.ExtraOrigins
}

// WriteGuardEnabled reports whether mutating routes require an editor token.
func (c *Config) WriteGuardEnabled() bool {
	return c.JWTPubKeyPath != ""
}
