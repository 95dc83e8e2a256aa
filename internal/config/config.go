// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/admitlens/internal/cache"
	"github.com/tomtom215/admitlens/internal/logging"
	"github.com/tomtom215/admitlens/internal/recommend"
	"github.com/tomtom215/admitlens/internal/sources"
)

// Catalog drivers.
const (
	CatalogMemory = "memory"
	CatalogDuckDB = "duckdb"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig     `koanf:"server"`
	Logging logging.Config   `koanf:"logging"`
	Catalog CatalogConfig    `koanf:"catalog"`
	Sources SourcesConfig    `koanf:"sources"`
	Engine  recommend.Config `koanf:"engine"`
	Cache   cache.Config     `koanf:"cache"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// RequestTimeout bounds a single API request, including the review stage.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// CatalogConfig selects and configures the institution catalog.
type CatalogConfig struct {
	// Driver is memory or duckdb.
	Driver string `koanf:"driver"`

	// Path is the YAML or JSON catalog file. The memory driver serves it
	// directly; the duckdb driver seeds from it.
	Path string `koanf:"path"`

	// DuckDBPath is the database file for the duckdb driver.
	DuckDBPath string `koanf:"duckdb_path"`

	// ReloadSchedule is a cron expression for reloading the catalog from
	// Path. Empty disables reloading.
	ReloadSchedule string `koanf:"reload_schedule"`
}

// SourcesConfig configures the community post sources.
type SourcesConfig struct {
	Reddit     sources.RedditConfig     `koanf:"reddit"`
	HackerNews sources.HackerNewsConfig `koanf:"hackernews"`
	Feeds      []sources.FeedConfig     `koanf:"feeds"`
	Breaker    sources.BreakerConfig    `koanf:"breaker"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// defaultConfig returns a Config with every default applied. Defaults are
// loaded first, then overridden by the config file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			RequestTimeout:  20 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: logging.DefaultConfig(),
		Catalog: CatalogConfig{
			Driver: CatalogMemory,
			Path:   "/data/catalog.yaml",
		},
		Sources: SourcesConfig{
			Reddit: sources.RedditConfig{
				Enabled:   true,
				BaseURL:   "https://www.reddit.com",
				Limit:     25,
				UserAgent: "admitlens/1.0",
				Timeout:   5 * time.Second,
			},
			HackerNews: sources.HackerNewsConfig{
				Enabled: true,
				BaseURL: "https://hn.algolia.com",
				Limit:   30,
				Timeout: 5 * time.Second,
			},
			Breaker: sources.DefaultBreakerConfig(),
		},
		Engine: *recommend.DefaultConfig(),
		Cache:  cache.DefaultConfig(),
	}
}
