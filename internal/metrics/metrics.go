// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Recommendation engine

	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitlens_recommend_requests_total",
			Help: "Total recommendation requests by outcome",
		},
		[]string{"outcome"}, // "ok", "no_eligible", "partial", "invalid", "catalog_unavailable", "canceled"
	)

	RecommendDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "admitlens_recommend_duration_seconds",
			Help:    "End-to-end recommendation latency in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "admitlens_recommend_eligible_institutions",
			Help:    "Number of institutions passing eligibility per request",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	// Community post sources

	SourceQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitlens_source_queries_total",
			Help: "Total community source queries by outcome",
		},
		[]string{"source", "outcome"},
	)

	SourceQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admitlens_source_query_duration_seconds",
			Help:    "Community source query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	PostsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitlens_posts_fetched_total",
			Help: "Posts that mention the queried institution, per source",
		},
		[]string{"source"},
	)

	// Review summary cache

	SummaryCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitlens_summary_cache_lookups_total",
			Help: "Review summary cache lookups by result",
		},
		[]string{"result"}, // "hit", "miss", "error"
	)

	// Circuit breakers

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "admitlens_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitlens_circuit_breaker_requests_total",
			Help: "Requests through circuit breakers by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected", "abandoned"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitlens_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Catalog

	CatalogInstitutions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "admitlens_catalog_institutions",
			Help: "Institutions currently loaded in the catalog",
		},
	)

	CatalogReloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitlens_catalog_reloads_total",
			Help: "Catalog reload attempts by outcome",
		},
		[]string{"outcome"},
	)

	CatalogQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admitlens_catalog_query_duration_seconds",
			Help:    "Catalog query latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"backend"},
	)

	// HTTP API

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admitlens_api_requests_total",
			Help: "Total API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "admitlens_api_request_duration_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "admitlens_api_active_requests",
			Help: "In-flight API requests",
		},
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records a finished recommendation request.
func RecordRecommendation(outcome string, eligible int, duration time.Duration) {
	RecommendRequests.WithLabelValues(outcome).Inc()
	RecommendDuration.Observe(duration.Seconds())
	if eligible >= 0 {
		RecommendCandidates.Observe(float64(eligible))
	}
}

// RecordCatalogReload records a catalog reload attempt.
func RecordCatalogReload(institutions int, err error) {
	if err != nil {
		CatalogReloads.WithLabelValues("error").Inc()
		return
	}
	CatalogReloads.WithLabelValues("ok").Inc()
	CatalogInstitutions.Set(float64(institutions))
}
