// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/tomtom215/admitlens/internal/sources"
	"github.com/tomtom215/admitlens/internal/validation"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	s := c.Server
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", s.Port)
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 {
		return fmt.Errorf("server read and write timeouts must be positive")
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be positive, got %s", s.RequestTimeout)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %s", s.ShutdownTimeout)
	}
	if !s.RateLimitDisabled {
		if s.RateLimitReqs < 1 {
			return fmt.Errorf("server.rate_limit_reqs must be positive, got %d", s.RateLimitReqs)
		}
		if s.RateLimitWindow <= 0 {
			return fmt.Errorf("server.rate_limit_window must be positive, got %s", s.RateLimitWindow)
		}
	}
	return nil
}

// validateLogging checks the logging section against its struct tags.
func (c *Config) validateLogging() error {
	if err := validation.ValidateStruct(&c.Logging); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	switch c.Catalog.Driver {
	case CatalogMemory:
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.path is required for the %s driver", CatalogMemory)
		}
	case CatalogDuckDB:
		if c.Catalog.DuckDBPath == "" {
			return fmt.Errorf("catalog.duckdb_path is required for the %s driver", CatalogDuckDB)
		}
	default:
		return fmt.Errorf("catalog.driver must be %q or %q, got %q", CatalogMemory, CatalogDuckDB, c.Catalog.Driver)
	}

	if c.Catalog.ReloadSchedule != "" {
		if c.Catalog.Path == "" {
			return fmt.Errorf("catalog.reload_schedule requires catalog.path")
		}
		if _, err := cron.ParseStandard(c.Catalog.ReloadSchedule); err != nil {
			return fmt.Errorf("catalog.reload_schedule is invalid: %w", err)
		}
	}
	return nil
}

func (c *Config) validateSources() error {
	s := c.Sources
	if s.Reddit.Enabled {
		if err := validateHTTPURL(s.Reddit.BaseURL, "sources.reddit.base_url"); err != nil {
			return err
		}
		if s.Reddit.UserAgent == "" {
			return fmt.Errorf("sources.reddit.user_agent is required when reddit is enabled")
		}
	}
	if s.HackerNews.Enabled {
		if err := validateHTTPURL(s.HackerNews.BaseURL, "sources.hackernews.base_url"); err != nil {
			return err
		}
	}

	seen := make(map[string]bool, len(s.Feeds))
	for i, f := range s.Feeds {
		if f.Name == "" {
			return fmt.Errorf("sources.feeds[%d].name is required", i)
		}
		if seen[f.Name] || f.Name == "reddit" || f.Name == "hackernews" {
			return fmt.Errorf("sources.feeds[%d].name %q is already in use", i, f.Name)
		}
		seen[f.Name] = true
		if !strings.Contains(f.URLTemplate, sources.QueryPlaceholder) {
			return fmt.Errorf("sources.feeds[%d].url_template must contain %s", i, sources.QueryPlaceholder)
		}
		if err := validateHTTPURL(strings.ReplaceAll(f.URLTemplate, sources.QueryPlaceholder, "q"), fmt.Sprintf("sources.feeds[%d].url_template", i)); err != nil {
			return err
		}
	}

	if s.Breaker.FailureRatio <= 0 || s.Breaker.FailureRatio > 1 {
		return fmt.Errorf("sources.breaker.failure_ratio must be in (0, 1], got %f", s.Breaker.FailureRatio)
	}
	if s.Breaker.Timeout <= 0 {
		return fmt.Errorf("sources.breaker.timeout must be positive, got %s", s.Breaker.Timeout)
	}
	return nil
}

// validateHTTPURL checks that raw is an absolute http or https URL.
func validateHTTPURL(raw, field string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s is invalid: %w", field, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", field, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s must include a host, got %q", field, raw)
	}
	return nil
}
