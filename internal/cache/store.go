// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/admitlens/internal/models"
)

// Store is what every backend implements. It satisfies review.SummaryCache.
type Store interface {
	Get(ctx context.Context, key string) (*models.ReviewSummary, bool, error)
	Put(ctx context.Context, key string, summary *models.ReviewSummary, ttl time.Duration) error
	Expire(ctx context.Context, key string) error
	Close() error
}

// Backend selects a Store implementation.
type Backend string

const (
	BackendNone   Backend = "none"
	BackendMemory Backend = "memory"
	BackendBadger Backend = "badger"
	BackendRedis  Backend = "redis"
)

// Config holds the settings for every backend; only the selected one is read.
type Config struct {
	Backend Backend       `koanf:"backend" validate:"omitempty,oneof=none memory badger redis"`
	TTL     time.Duration `koanf:"ttl"`
	Prefix  string        `koanf:"prefix"`

	// CleanupInterval applies to the memory backend.
	CleanupInterval time.Duration `koanf:"cleanup_interval"`

	// BadgerPath is the on-disk directory; empty means in-memory.
	BadgerPath string `koanf:"badger_path"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`
}

// DefaultConfig caches summaries in memory for 30 minutes.
func DefaultConfig() Config {
	return Config{
		Backend:         BackendMemory,
		TTL:             30 * time.Minute,
		Prefix:          "admitlens:",
		CleanupInterval: DefaultCleanupInterval,
	}
}

// Validate checks the fields the selected backend needs.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", BackendNone:
		return nil
	case BackendMemory, BackendBadger:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("cache.redis_addr is required for the redis backend")
		}
	default:
		return fmt.Errorf("cache.backend %q is not one of none, memory, badger, redis", c.Backend)
	}
	if c.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive, got %s", c.TTL)
	}
	return nil
}

// Open builds the configured backend. It returns a nil Store for
// BackendNone so callers can skip the caching decorator.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case BackendMemory:
		return NewMemoryStore(cfg.CleanupInterval), nil
	case BackendBadger:
		s, err := OpenBadger(cfg.BadgerPath, cfg.Prefix)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendRedis:
		client, err := ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.Prefix), nil
	default:
		return nil, nil
	}
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*BadgerStore)(nil)
	_ Store = (*RedisStore)(nil)
)
