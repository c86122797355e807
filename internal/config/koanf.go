// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, first hit
// wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/stackwise/config.yaml",
	"/etc/stackwise/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "STACKWISE_CONFIG"

// defaultConfig returns the built-in defaults, applied before the file
// and environment layers.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8642,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:      "/data/stackwise.duckdb",
			MaxMemory: "2GB",
			Threads:   0,
		},
		NATS: NATSConfig{
			Enabled:        false,
			URL:            "nats://127.0.0.1:4222",
			PublishTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			ProfileTTL: 5 * time.Minute,
		},
		API: APIConfig{
			DefaultRecommendationCount: 5,
			MaxRecommendationCount:     50,
			RateLimitRequests:          100,
			RateLimitWindow:            time.Minute,
			CORSOrigins:                []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from layered sources:
//  1. built-in defaults
//  2. optional YAML config file
//  3. STACKWISE_* environment variables (highest priority)
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env strings.
var sliceConfigPaths = []string{
	"api.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envTransformFunc maps STACKWISE_* environment variables to config
// paths. Unmapped variables are skipped so stray environment does not
// pollute the config.
//
//	STACKWISE_HTTP_PORT   -> server.port
//	STACKWISE_DUCKDB_PATH -> database.path
//	STACKWISE_NATS_URL    -> nats.url
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	envMappings := map[string]string{
		"stackwise_http_host":   "server.host",
		"stackwise_http_port":   "server.port",
		"stackwise_timeout":     "server.timeout",
		"stackwise_environment": "server.environment",

		"stackwise_duckdb_path":       "database.path",
		"stackwise_duckdb_max_memory": "database.max_memory",
		"stackwise_duckdb_threads":    "database.threads",

		"stackwise_nats_enabled":         "nats.enabled",
		"stackwise_nats_url":             "nats.url",
		"stackwise_nats_publish_timeout": "nats.publish_timeout",

		"stackwise_profile_cache_ttl": "cache.profile_ttl",

		"stackwise_default_rec_count":   "api.default_recommendation_count",
		"stackwise_max_rec_count":       "api.max_recommendation_count",
		"stackwise_rate_limit_requests": "api.rate_limit_requests",
		"stackwise_rate_limit_window":   "api.rate_limit_window",
		"stackwise_cors_origins":        "api.cors_origins",

		"stackwise_log_level":  "logging.level",
		"stackwise_log_format": "logging.format",
		"stackwise_log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
