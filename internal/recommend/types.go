// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/admitlens/internal/models"
)

var (
	// ErrValidation wraps every rejected request. errors.As also yields the
	// underlying *validation.RequestValidationError when one exists.
	ErrValidation = errors.New("invalid recommendation request")

	// ErrCatalogUnavailable wraps catalog query failures.
	ErrCatalogUnavailable = errors.New("institution catalog unavailable")
)

// NoEligibleReason is the Response.Reason reported when no institution
// passes the eligibility floor, a fraction of the cutoff. It is not an error.
func NoEligibleReason(floor float64) string {
	return fmt.Sprintf("no institutions met the %.4g%%-of-cutoff floor", floor*100)
}

// Request is the engine input.
type Request struct {
	Preferences models.CandidatePreferences `json:"preferences"`

	// MaxResults of 0 selects the configured default.
	MaxResults int `json:"max_results"`
}

// Response is the engine output.
type Response struct {
	// Recommendations is never nil; it is empty when Reason is set.
	Recommendations []models.Recommendation `json:"recommendations"`

	// Reason explains an empty result.
	Reason string `json:"reason,omitempty"`

	Meta ResponseMetadata `json:"meta"`
}

// ResponseMetadata describes how a response was produced.
type ResponseMetadata struct {
	RequestID string `json:"request_id"`

	// TotalCandidates is the number of institutions that passed eligibility
	// and have an admission estimate, before truncation.
	TotalCandidates int `json:"total_candidates"`

	// Partial is set when the review stage was cut short and some
	// recommendations carry no review summary.
	Partial bool `json:"partial"`

	DurationMS int64 `json:"duration_ms"`
}
