// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/admitlens/internal/catalog"
	"github.com/tomtom215/admitlens/internal/models"
	"github.com/tomtom215/admitlens/internal/recommend"
	"github.com/tomtom215/admitlens/internal/validation"
)

// Institutions handles GET /api/v1/institutions?region=&type=.
func (h *Handler) Institutions(w http.ResponseWriter, r *http.Request) {
	filter := catalog.Filter{Region: r.URL.Query().Get("region")}
	if raw := r.URL.Query().Get("type"); raw != "" {
		t, err := models.ParseInstitutionType(raw)
		if err != nil {
			respondValidation(w, r, validation.NewFieldError("type", "institution_type", raw,
				"type must be one of Government, Private, Autonomous, Deemed"))
			return
		}
		filter.Type = t
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	start := time.Now()
	insts, err := h.catalog.Query(ctx, filter)
	if err != nil {
		respondEngineError(w, r, catalogError(ctx.Err(), err))
		return
	}
	if insts == nil {
		insts = []models.Institution{}
	}

	respondSuccess(w, r, insts, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Count:       len(insts),
	})
}

// Institution handles GET /api/v1/institutions/{id}.
func (h *Handler) Institution(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.lookup(w, r)
	if !ok {
		return
	}
	respondSuccess(w, r, inst, models.Metadata{})
}

// InstitutionReviews handles GET /api/v1/institutions/{id}/reviews.
func (h *Handler) InstitutionReviews(w http.ResponseWriter, r *http.Request) {
	if h.reviews == nil {
		respondError(w, r, http.StatusServiceUnavailable, CodeReviewsDisabled, "No review sources are configured", nil)
		return
	}

	inst, ok := h.lookup(w, r)
	if !ok {
		return
	}

	ctx, cancel := h.withTimeout(r.Context())
	defer cancel()

	start := time.Now()
	summary, err := h.reviews.Summary(ctx, inst)
	if err != nil {
		respondEngineError(w, r, err)
		return
	}
	respondSuccess(w, r, summary, models.Metadata{
		QueryTimeMS: time.Since(start).Milliseconds(),
		Count:       summary.TotalReviews,
	})
}

// lookup resolves the {id} path parameter, writing the error response when
// it fails.
func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*models.Institution, bool) {
	id := chi.URLParam(r, "id")

	inst, err := h.catalog.Get(r.Context(), id)
	switch {
	case err == nil:
		return inst, true
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, r, http.StatusNotFound, CodeNotFound, fmt.Sprintf("Institution %q not found", id), nil)
	default:
		respondEngineError(w, r, catalogError(r.Context().Err(), err))
	}
	return nil, false
}

// catalogError classifies a catalog failure the same way the engine does.
func catalogError(ctxErr, err error) error {
	if ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", recommend.ErrCatalogUnavailable, err)
}
