// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

/*
Package config loads the Admitlens server configuration.

# Sources

Configuration is layered with koanf, later layers winning:

  - built-in defaults (defaultConfig)
  - an optional YAML file: CONFIG_PATH, then config.yaml, config.yml,
    /etc/admitlens/config.yaml, /etc/admitlens/config.yml
  - ADMITLENS_* environment variables

# Sections

  - server: listen address, timeouts, rate limiting, CORS origins
  - logging: level (trace, debug, info, warn, error) and format (json, console)
  - catalog: driver (memory, duckdb), catalog file, DuckDB file, reload cron
  - sources: reddit, hackernews, RSS/Atom feeds, circuit breaker
  - engine: recommendation policy, limits, concurrency, fetch politeness,
    cancellation policy, accepted exam types
  - cache: review summary cache backend (none, memory, badger, redis)

# Environment Variables

The ADMITLENS_ prefix is stripped and the first underscore separates the
section from the key, so ADMITLENS_SERVER_PORT sets server.port and
ADMITLENS_LOGGING_LEVEL sets logging.level. Keys that contain underscores
have explicit names:

  - ADMITLENS_SERVER_REQUEST_TIMEOUT, ADMITLENS_SERVER_CORS_ORIGINS (comma separated)
  - ADMITLENS_CATALOG_DUCKDB_PATH, ADMITLENS_CATALOG_RELOAD_SCHEDULE
  - ADMITLENS_REDDIT_ENABLED, ADMITLENS_REDDIT_USER_AGENT, ADMITLENS_HACKERNEWS_ENABLED
  - ADMITLENS_ELIGIBILITY_FLOOR, ADMITLENS_MAX_PARALLEL, ADMITLENS_REVIEW_BUDGET
  - ADMITLENS_SOURCE_TIMEOUT, ADMITLENS_POLITE_DELAY, ADMITLENS_MAX_OUTBOUND
  - ADMITLENS_ON_CANCEL, ADMITLENS_EXAM_TYPES (comma separated)
  - ADMITLENS_CACHE_REDIS_ADDR, ADMITLENS_CACHE_BADGER_PATH

Feeds and admission bands are lists of objects and can only be set in YAML.

# Example

	server:
	  port: 8080
	catalog:
	  driver: duckdb
	  path: /data/catalog.yaml
	  duckdb_path: /data/catalog.duckdb
	  reload_schedule: "0 3 * * *"
	sources:
	  feeds:
	    - name: collegeforum
	      url_template: https://forum.example.com/search.rss?q={query}
	engine:
	  on_cancel: fail
	  concurrency:
	    max_parallel: 4
	cache:
	  backend: redis
	  redis_addr: redis://cache:6379/0
*/
package config
