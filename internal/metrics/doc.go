// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

/*
Package metrics defines the Prometheus collectors exported at /metrics.

Collectors are registered on the default registry through promauto when the
package is loaded, so importing packages record directly:

	metrics.SourceQueries.WithLabelValues("reddit", "ok").Inc()

# Families

  - admitlens_recommend_*: request outcomes, latency, eligible counts
  - admitlens_source_*: per-source query outcomes and latency
  - admitlens_posts_fetched_total: posts mentioning the queried institution
  - admitlens_summary_cache_lookups_total: review cache hit, miss, error
  - admitlens_circuit_breaker_*: breaker state, requests, transitions
  - admitlens_catalog_*: loaded institutions, reloads, query latency
  - admitlens_api_*: HTTP request counts, latency, in-flight gauge
*/
package metrics
