// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

/*
Package cache provides the review summary stores behind review.CachedProvider.

Three backends share one Store interface (get, put with TTL, expire):

  - MemoryStore: a TTL map local to the process, swept in the background.
  - BadgerStore: embedded BadgerDB; entries carry Badger's native TTL and
    survive restarts when a path is configured.
  - RedisStore: go-redis client so several replicas share summaries.

Summaries are serialized with goccy/go-json for the persistent backends.
Open picks a backend from Config; BackendNone yields a nil Store and the
caller runs the review pipeline uncached.

	store, err := cache.Open(ctx, cfg.Cache)
	if err != nil {
	    return err
	}
	if store != nil {
	    defer store.Close()
	    provider, _ = review.NewCachedProvider(pipeline, store, cfg.Cache.TTL, logger)
	}
*/
package cache
