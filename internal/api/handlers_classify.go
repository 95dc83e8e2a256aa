// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package api

import (
	"net/http"

	"github.com/tomtom215/admitlens/internal/models"
	"github.com/tomtom215/admitlens/internal/validation"
)

// ClassifyRequest is the body of POST /api/v1/classify.
type ClassifyRequest struct {
	Text string `json:"text" validate:"required,max=20000"`
}

// Classify handles POST /api/v1/classify and returns the sentiment, topics
// and lexicon hit counts for a text.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, CodeInvalidJSON, `Request body must be {"text": "..."}`, err)
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondValidation(w, r, verr)
		return
	}

	respondSuccess(w, r, h.classifier.Analyze(req.Text), models.Metadata{})
}
