// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/admitlens/internal/catalog"
	"github.com/tomtom215/admitlens/internal/models"
)

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status           string  `json:"status"`
	Version          string  `json:"version"`
	CatalogReachable bool    `json:"catalog_reachable"`
	Institutions     int     `json:"institutions"`
	ReviewsEnabled   bool    `json:"reviews_enabled"`
	Uptime           float64 `json:"uptime_seconds"`
}

// Health handles GET /health. It answers 503 when the catalog cannot be
// queried.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := HealthStatus{
		Status:         "healthy",
		Version:        h.version,
		ReviewsEnabled: h.reviews != nil,
		Uptime:         time.Since(h.startTime).Seconds(),
	}

	insts, err := h.catalog.Query(ctx, catalog.Filter{})
	if err == nil {
		status.CatalogReachable = true
		status.Institutions = len(insts)
	} else {
		status.Status = "degraded"
	}

	code := http.StatusOK
	if !status.CatalogReachable {
		code = http.StatusServiceUnavailable
	}
	respondJSON(w, code, &models.APIResponse{
		Status: "success",
		Data:   status,
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
	})
}
