// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package review

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/admitlens/internal/metrics"
	"github.com/tomtom215/admitlens/internal/models"
)

// SummaryCache stores review summaries by key. The caller owns the cache
// and its lifetime; implementations live in the cache package.
type SummaryCache interface {
	// Get returns the cached summary and whether it was found.
	Get(ctx context.Context, key string) (*models.ReviewSummary, bool, error)
	// Put stores a summary that expires after ttl.
	Put(ctx context.Context, key string, summary *models.ReviewSummary, ttl time.Duration) error
	// Expire removes a key immediately.
	Expire(ctx context.Context, key string) error
}

// CachedProvider serves summaries from a SummaryCache and falls back to the
// wrapped provider on a miss. Cache failures are logged and treated as
// misses.
type CachedProvider struct {
	next   Provider
	cache  SummaryCache
	ttl    time.Duration
	logger zerolog.Logger
}

// NewCachedProvider decorates next with cache.
func NewCachedProvider(next Provider, cache SummaryCache, ttl time.Duration, logger zerolog.Logger) (*CachedProvider, error) {
	if next == nil || cache == nil {
		return nil, errors.New("cached provider requires a provider and a cache")
	}
	if ttl <= 0 {
		return nil, errors.New("cached provider ttl must be positive")
	}
	return &CachedProvider{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger.With().Str("component", "review_cache").Logger(),
	}, nil
}

// CacheKey returns the cache key for an institution's summary.
func CacheKey(institutionID string) string {
	return "review:" + institutionID
}

// Summary implements Provider.
func (c *CachedProvider) Summary(ctx context.Context, inst *models.Institution) (*models.ReviewSummary, error) {
	key := CacheKey(inst.ID)

	cached, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.SummaryCacheLookups.WithLabelValues("error").Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("Summary cache read failed")
	case ok:
		metrics.SummaryCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.SummaryCacheLookups.WithLabelValues("miss").Inc()
	}

	summary, err := c.next.Summary(ctx, inst)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Put(ctx, key, summary, c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("Summary cache write failed")
	}
	return summary, nil
}

// Invalidate drops the cached summary for an institution.
func (c *CachedProvider) Invalidate(ctx context.Context, institutionID string) error {
	return c.cache.Expire(ctx, CacheKey(institutionID))
}
