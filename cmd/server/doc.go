// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

/*
Command server runs the admitlens HTTP API.

Startup order:

 1. Configuration: koanf layers (defaults, config.yaml, ADMITLENS_* env)
 2. Logging: zerolog, JSON or console
 3. Catalog: YAML file in memory, or DuckDB seeded from the file
 4. Review pipeline: Reddit, Hacker News and RSS/Atom feeds behind circuit
    breakers, the lexicon classifier, the aggregator, and the summary cache
    (memory, badger or redis)
 5. Recommendation engine
 6. Chi router
 7. Supervisor tree: the HTTP server in the api layer, the cron catalog
    reload in the jobs layer

SIGINT and SIGTERM cancel the root context. The HTTP server then stops
accepting connections and waits up to server.shutdown_timeout for in-flight
requests.

Example:

	export ADMITLENS_CATALOG_PATH=./catalog.yaml
	export ADMITLENS_CACHE_BACKEND=badger
	export ADMITLENS_CACHE_BADGER_PATH=/var/lib/admitlens/cache
	./admitlens
*/
package main
