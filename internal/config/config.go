// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Package config defines the application configuration and its layered
// loading: built-in defaults, an optional YAML file, then environment
// variables, with ENV > file > defaults precedence.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	NATS     NATSConfig     `koanf:"nats"`
	Cache    CacheConfig    `koanf:"cache"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the listen address.
	Host string `koanf:"host"`

	// Port is the listen port.
	Port int `koanf:"port"`

	// Timeout bounds request read/write and graceful shutdown.
	Timeout time.Duration `koanf:"timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" runs in-memory.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB's memory use, e.g. "2GB".
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count; 0 selects runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// NATSConfig holds event publishing settings.
type NATSConfig struct {
	// Enabled switches domain event publishing on. When false the
	// service runs with a no-op publisher.
	Enabled bool `koanf:"enabled"`

	// URL is the NATS server address.
	URL string `koanf:"url"`

	// PublishTimeout bounds a single publish attempt.
	PublishTimeout time.Duration `koanf:"publish_timeout"`
}

// CacheConfig holds profile cache settings.
type CacheConfig struct {
	// ProfileTTL is how long a regenerated profile stays cached.
	ProfileTTL time.Duration `koanf:"profile_ttl"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// DefaultRecommendationCount is used when a request omits count.
	DefaultRecommendationCount int `koanf:"default_recommendation_count"`

	// MaxRecommendationCount caps the per-request count.
	MaxRecommendationCount int `koanf:"max_recommendation_count"`

	// RateLimitRequests per RateLimitWindow per client IP. Zero
	// disables rate limiting.
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed origins.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would prevent
// startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server: port %d outside 1..65535", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server: timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.Environment != "development" && c.Server.Environment != "production" {
		return fmt.Errorf("server: environment must be development or production, got %q", c.Server.Environment)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database: path is required")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		return fmt.Errorf("nats: url is required when publishing is enabled")
	}
	if c.Cache.ProfileTTL <= 0 {
		return fmt.Errorf("cache: profile ttl must be positive, got %s", c.Cache.ProfileTTL)
	}
	if c.API.DefaultRecommendationCount < 1 {
		return fmt.Errorf("api: default recommendation count must be at least 1, got %d",
			c.API.DefaultRecommendationCount)
	}
	if c.API.MaxRecommendationCount < c.API.DefaultRecommendationCount {
		return fmt.Errorf("api: max recommendation count %d below default %d",
			c.API.MaxRecommendationCount, c.API.DefaultRecommendationCount)
	}
	if c.API.RateLimitRequests > 0 && c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api: rate limit window must be positive when rate limiting is enabled")
	}
	return nil
}
