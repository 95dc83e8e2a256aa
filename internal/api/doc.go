// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

/*
Package api exposes the recommendation engine over HTTP using the Chi router.

# Endpoints

	POST /api/v1/recommendations          ranked recommendations for a candidate
	GET  /api/v1/institutions             catalog listing (?region=&type=)
	GET  /api/v1/institutions/{id}        one institution
	GET  /api/v1/institutions/{id}/reviews  review summary for one institution
	POST /api/v1/classify                 lexicon analysis of a text
	GET  /health                          liveness and catalog status
	GET  /metrics                         Prometheus metrics

# Responses

Every JSON response uses the models.APIResponse envelope. Errors map as
follows:

	400 VALIDATION_ERROR     invalid preferences or parameters
	400 INVALID_JSON         malformed request body
	404 NOT_FOUND            unknown institution
	429 RATE_LIMIT_EXCEEDED  per-IP limit reached
	503 CATALOG_UNAVAILABLE  catalog query failed
	504 TIMEOUT              request deadline reached
	500 INTERNAL_ERROR       anything else

# Middleware

Every request passes through request ID propagation (X-Request-ID, shared
with the logging package), panic recovery, CORS and a zerolog access log
that also feeds the HTTP metrics. API routes are rate limited per client IP.
*/
package api
