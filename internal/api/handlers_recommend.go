// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package api

import (
	"context"
	"net/http"

	"github.com/tomtom215/admitlens/internal/models"
	"github.com/tomtom215/admitlens/internal/recommend"
)

// withTimeout applies the configured request timeout.
func (h *Handler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.requestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.requestTimeout)
}

// Recommendations handles POST /api/v1/recommendations.
//
// Body: {"preferences": {...}, "max_results": 10}
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req recommend.Request
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidJSON, "Request body must be a JSON recommendation request", err)
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	resp, err := h.engine.Recommend(ctx, req)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}

	respondSuccess(w, r, resp, models.Metadata{
		QueryTimeMS: resp.Meta.DurationMS,
		Count:       len(resp.Recommendations),
	})
}
