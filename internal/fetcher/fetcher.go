// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/tomtom215/admitlens/internal/logging"
	"github.com/tomtom215/admitlens/internal/metrics"
	"github.com/tomtom215/admitlens/internal/models"
)

// Config controls outbound query behavior.
type Config struct {
	// SourceTimeout bounds each individual source query.
	// Default: 4s.
	SourceTimeout time.Duration `koanf:"source_timeout" json:"source_timeout"`

	// PoliteDelay is the minimum spacing between two queries to the same
	// source. Zero disables spacing.
	// Default: 50ms.
	PoliteDelay time.Duration `koanf:"polite_delay" json:"polite_delay"`

	// MaxOutbound caps simultaneous source queries across all fetches.
	// Default: 12.
	MaxOutbound int `koanf:"max_outbound" json:"max_outbound"`
}

// DefaultConfig returns the default fetcher configuration.
func DefaultConfig() Config {
	return Config{
		SourceTimeout: 4 * time.Second,
		PoliteDelay:   50 * time.Millisecond,
		MaxOutbound:   12,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.SourceTimeout <= 0 {
		return fmt.Errorf("source_timeout must be positive, got %s", c.SourceTimeout)
	}
	if c.PoliteDelay < 0 {
		return fmt.Errorf("polite_delay must not be negative, got %s", c.PoliteDelay)
	}
	if c.MaxOutbound < 1 || c.MaxOutbound > 64 {
		return fmt.Errorf("max_outbound must be between 1 and 64, got %d", c.MaxOutbound)
	}
	return nil
}

// Fetcher queries every source for posts mentioning an institution name.
// Source failures are logged and contribute no posts. Nothing is retried.
type Fetcher struct {
	sources  []Source
	limiters []*rate.Limiter
	outbound *semaphore.Weighted
	timeout  time.Duration
	logger   zerolog.Logger
}

// New creates a Fetcher over sources. A Fetcher with no sources returns no
// posts.
func New(cfg Config, sources []Source, logger zerolog.Logger) (*Fetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fetcher config: %w", err)
	}

	f := &Fetcher{
		sources:  make([]Source, 0, len(sources)),
		limiters: make([]*rate.Limiter, 0, len(sources)),
		outbound: semaphore.NewWeighted(int64(cfg.MaxOutbound)),
		timeout:  cfg.SourceTimeout,
		logger:   logger.With().Str("component", "fetcher").Logger(),
	}

	for _, src := range sources {
		if src == nil {
			continue
		}
		limit := rate.Inf
		if cfg.PoliteDelay > 0 {
			limit = rate.Every(cfg.PoliteDelay)
		}
		f.sources = append(f.sources, src)
		f.limiters = append(f.limiters, rate.NewLimiter(limit, 1))
	}
	return f, nil
}

// Sources returns the names of the configured sources.
func (f *Fetcher) Sources() []string {
	names := make([]string, len(f.sources))
	for i, s := range f.sources {
		names[i] = s.Name()
	}
	return names
}

// Fetch returns the posts from all sources whose title or body mentions name
// (case-insensitive). Sources are queried concurrently under the outbound
// cap; results keep source order. When ctx is done, sources that have not
// answered contribute nothing.
func (f *Fetcher) Fetch(ctx context.Context, name string) []models.CommunityPost {
	name = strings.TrimSpace(name)
	if name == "" || ctx.Err() != nil {
		return nil
	}

	found := make([][]models.CommunityPost, len(f.sources))
	var g errgroup.Group
	for i := range f.sources {
		g.Go(func() error {
			found[i] = f.fetchOne(ctx, i, name)
			return nil
		})
	}
	_ = g.Wait()

	var posts []models.CommunityPost
	for _, p := range found {
		posts = append(posts, p...)
	}
	return posts
}

func (f *Fetcher) fetchOne(ctx context.Context, i int, name string) []models.CommunityPost {
	src := f.sources[i]

	found, err := f.query(ctx, i, name)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		f.logger.Warn().
			Str("request_id", logging.RequestIDFromContext(ctx)).
			Str("source", src.Name()).
			Str("institution", name).
			Str("kind", string(KindOf(err))).
			Err(err).
			Msg("Source unavailable, continuing without its posts")
		return nil
	}

	matched := FilterMentions(found, name)
	metrics.PostsFetched.WithLabelValues(src.Name()).Add(float64(len(matched)))
	return matched
}

// query runs one source search under the politeness limiter, the outbound
// semaphore and the per-source timeout.
func (f *Fetcher) query(ctx context.Context, i int, name string) ([]models.CommunityPost, error) {
	src := f.sources[i]

	if err := f.limiters[i].Wait(ctx); err != nil {
		return nil, err
	}
	if err := f.outbound.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer f.outbound.Release(1)

	qctx, cancel := WithSourceTimeout(ctx, f.timeout)
	defer cancel()

	start := time.Now()
	posts, err := src.Search(qctx, name)
	metrics.SourceQueryDuration.WithLabelValues(src.Name()).Observe(time.Since(start).Seconds())

	if err == nil && qctx.Err() != nil {
		err = qctx.Err()
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && SourceTimedOut(qctx) {
			err = AsTimeout(src.Name(), err)
		}
		metrics.SourceQueries.WithLabelValues(src.Name(), string(KindOf(err))).Inc()
		return nil, err
	}

	metrics.SourceQueries.WithLabelValues(src.Name(), "ok").Inc()
	return posts, nil
}

// FilterMentions keeps posts whose title or body contains name,
// case-insensitively, and drops repeated post IDs from the same source.
func FilterMentions(posts []models.CommunityPost, name string) []models.CommunityPost {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil
	}

	out := make([]models.CommunityPost, 0, len(posts))
	seen := make(map[string]struct{}, len(posts))
	for _, p := range posts {
		if !strings.Contains(strings.ToLower(p.Title+"\n"+p.Body), needle) {
			continue
		}
		if p.ID != "" {
			key := p.Source + "\x00" + p.ID
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}
