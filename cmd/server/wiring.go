// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/tomtom215/admitlens/internal/cache"
	"github.com/tomtom215/admitlens/internal/catalog"
	"github.com/tomtom215/admitlens/internal/classify"
	"github.com/tomtom215/admitlens/internal/config"
	"github.com/tomtom215/admitlens/internal/fetcher"
	"github.com/tomtom215/admitlens/internal/review"
	"github.com/tomtom215/admitlens/internal/sources"
)

// catalogStore is what the server needs from either catalog driver.
type catalogStore interface {
	catalog.Store
	catalog.Reloader
}

// buildCatalog opens the configured catalog. The closer is nil for the
// memory driver.
func buildCatalog(ctx context.Context, cfg *config.CatalogConfig) (catalogStore, io.Closer, error) {
	switch cfg.Driver {
	case config.CatalogDuckDB:
		store, err := catalog.OpenDuckDB(ctx, cfg.DuckDBPath, cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open duckdb catalog: %w", err)
		}
		return store, store, nil
	case config.CatalogMemory, "":
		store, err := catalog.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("load catalog: %w", err)
		}
		return store, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
	}
}

// buildSources creates the enabled sources, each behind a circuit breaker.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildSources(cfg *config.SourcesConfig, logger zerolog.Logger) ([]fetcher.Source, error) {
	var raw []fetcher.Source
	if cfg.Reddit.Enabled {
		raw = append(raw, sources.NewReddit(cfg.Reddit))
	}
	if cfg.HackerNews.Enabled {
		raw = append(raw, sources.NewHackerNews(cfg.HackerNews))
	}
	for _, fc := range cfg.Feeds {
		feed, err := sources.NewFeed(fc)
		if err != nil {
			return nil, fmt.Errorf("feed %q: %w", fc.Name, err)
		}
		raw = append(raw, feed)
	}

	wrapped := make([]fetcher.Source, 0, len(raw))
	for _, src := range raw {
		wrapped = append(wrapped, sources.NewBreaker(src, cfg.Breaker, logger))
	}
	return wrapped, nil
}

// reviewStack is the review provider plus the resources to release on exit.
type reviewStack struct {
	provider review.Provider
	cache    cache.Store
}

func (r *reviewStack) Close() error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Close()
}

// buildReviews wires fetcher, classifier and aggregator into the review
// provider and puts the configured cache in front of it. With no sources
// enabled the provider is nil and recommendations carry no reviews.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func buildReviews(ctx context.Context, cfg *config.Config, classifier classify.TextClassifier, logger zerolog.Logger) (*reviewStack, error) {
	srcs, err := buildSources(&cfg.Sources, logger)
	if err != nil {
		return nil, err
	}
	if len(srcs) == 0 {
		logger.Warn().Msg("No community sources enabled, recommendations will carry no reviews")
		return &reviewStack{}, nil
	}

	f, err := fetcher.New(cfg.Engine.Fetch, srcs, logger)
	if err != nil {
		return nil, fmt.Errorf("create fetcher: %w", err)
	}
	agg, err := review.NewAggregator(cfg.Engine.AggregatorConfig())
	if err != nil {
		return nil, fmt.Errorf("create aggregator: %w", err)
	}
	pipeline, err := review.NewPipeline(f, classifier, agg, logger)
	if err != nil {
		return nil, err
	}

	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
		return nil, fmt.Errorf("open review cache: %w", err)
	}
	if store == nil {
		logger.Info().Strs("sources", f.Sources()).Msg("Review pipeline ready (uncached)")
		return &reviewStack{provider: pipeline}, nil
	}

	cached, err := review.NewCachedProvider(pipeline, store, cfg.Cache.TTL, logger)
	if err != nil {
		return nil, errors.Join(err, store.Close())
	}
	logger.Info().
		Strs("sources", f.Sources()).
		Str("cache", string(cfg.Cache.Backend)).
		Dur("ttl", cfg.Cache.TTL).
		Msg("Review pipeline ready")
	return &reviewStack{provider: cached, cache: store}, nil
}
