// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/admitlens/config.yaml",
	"/etc/admitlens/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is stripped from environment variable names before mapping.
const EnvPrefix = "ADMITLENS_"

// Load loads configuration from layered sources:
//  1. Defaults: built-in values from defaultConfig
//  2. Config file: optional YAML file
//  3. Environment variables: ADMITLENS_* overrides
//
// The result is validated before it is returned.
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

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
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

// findConfigFile returns the first config file found, or "".
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

// sliceConfigPaths are parsed as comma-separated lists when set from the
// environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"engine.exam_types",
}

// processSliceFields converts comma-separated strings to slices for the
// known slice paths. YAML values are already slices and are left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
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

// envMappings maps environment names (prefix stripped, lowercased) to
// config paths whose section or key contains an underscore.
var envMappings = map[string]string{
	// Server
	"server_read_timeout":        "server.read_timeout",
	"server_write_timeout":       "server.write_timeout",
	"server_request_timeout":     "server.request_timeout",
	"server_shutdown_timeout":    "server.shutdown_timeout",
	"server_rate_limit_reqs":     "server.rate_limit_reqs",
	"server_rate_limit_window":   "server.rate_limit_window",
	"server_rate_limit_disabled": "server.rate_limit_disabled",
	"server_cors_origins":        "server.cors_origins",

	// Catalog
	"catalog_duckdb_path":     "catalog.duckdb_path",
	"catalog_reload_schedule": "catalog.reload_schedule",

	// Sources
	"reddit_enabled":      "sources.reddit.enabled",
	"reddit_base_url":     "sources.reddit.base_url",
	"reddit_subreddit":    "sources.reddit.subreddit",
	"reddit_limit":        "sources.reddit.limit",
	"reddit_user_agent":   "sources.reddit.user_agent",
	"reddit_timeout":      "sources.reddit.timeout",
	"hackernews_enabled":  "sources.hackernews.enabled",
	"hackernews_base_url": "sources.hackernews.base_url",
	"hackernews_limit":    "sources.hackernews.limit",
	"hackernews_timeout":  "sources.hackernews.timeout",
	"breaker_timeout":     "sources.breaker.timeout",
	"breaker_interval":    "sources.breaker.interval",

	// Engine
	"eligibility_floor":         "engine.policy.eligibility_floor",
	"floor_chance":              "engine.policy.floor_chance",
	"recent_window":             "engine.policy.recent_window",
	"trend_threshold":           "engine.policy.trend_threshold",
	"topic_sentiment_threshold": "engine.policy.topic_sentiment_threshold",
	"default_results":           "engine.limits.default_results",
	"max_results":               "engine.limits.max_results",
	"max_parallel":              "engine.concurrency.max_parallel",
	"review_budget":             "engine.concurrency.review_budget",
	"source_timeout":            "engine.fetch.source_timeout",
	"polite_delay":              "engine.fetch.polite_delay",
	"max_outbound":              "engine.fetch.max_outbound",
	"on_cancel":                 "engine.on_cancel",
	"exam_types":                "engine.exam_types",

	// Cache
	"cache_cleanup_interval": "cache.cleanup_interval",
	"cache_badger_path":      "cache.badger_path",
	"cache_redis_addr":       "cache.redis_addr",
	"cache_redis_password":   "cache.redis_password",
	"cache_redis_db":         "cache.redis_db",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Explicit mappings win; otherwise the first underscore separates section
// and key.
//
// Examples:
//   - ADMITLENS_SERVER_PORT -> server.port
//   - ADMITLENS_LOGGING_LEVEL -> logging.level
//   - ADMITLENS_MAX_PARALLEL -> engine.concurrency.max_parallel
//   - ADMITLENS_CACHE_REDIS_ADDR -> cache.redis_addr
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	return section + "." + rest
}
