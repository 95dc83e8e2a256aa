// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package models

import "strings"

// CandidatePreferences is supplied per request and never persisted.
type CandidatePreferences struct {
	// ExamType is the entrance exam the score belongs to.
	ExamType ExamType `json:"exam_type" validate:"required"`

	// Score is the candidate's result, on the same scale as the exam cutoffs.
	Score float64 `json:"score" validate:"gt=0"`

	// BranchPreferences is ordered; the first entry is the primary branch.
	BranchPreferences []string `json:"branch_preferences" validate:"required,min=1,dive,required"`

	// LocationPreferences lists acceptable regions. Empty means no constraint.
	LocationPreferences []string `json:"location_preferences,omitempty" validate:"omitempty,dive,required"`

	// InstitutionTypePreferences lists acceptable types. Empty means no constraint.
	InstitutionTypePreferences []InstitutionType `json:"institution_type_preferences,omitempty" validate:"omitempty,dive,institution_type"`

	// MaxFees caps annual fees when set.
	MaxFees *float64 `json:"max_fees,omitempty" validate:"omitempty,gt=0"`
}

// PrimaryBranch returns the first preferred branch, or "" when none.
func (p *CandidatePreferences) PrimaryBranch() string {
	if len(p.BranchPreferences) == 0 {
		return ""
	}
	return p.BranchPreferences[0]
}

// PrefersRegion reports whether region is among the location preferences.
func (p *CandidatePreferences) PrefersRegion(region string) bool {
	for _, r := range p.LocationPreferences {
		if strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}

// PrefersType reports whether t is among the institution type preferences.
func (p *CandidatePreferences) PrefersType(t InstitutionType) bool {
	for _, pt := range p.InstitutionTypePreferences {
		if pt == t {
			return true
		}
	}
	return false
}
