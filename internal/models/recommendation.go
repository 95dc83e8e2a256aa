// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package models

// ScoreBreakdown holds the match sub-scores. Their caps sum to 100.
type ScoreBreakdown struct {
	Location   float64 `json:"location"`
	Type       float64 `json:"type"`
	Branch     float64 `json:"branch"`
	Placement  float64 `json:"placement"`
	Rank       float64 `json:"rank"`
	Autonomy   float64 `json:"autonomy"`
	Facilities float64 `json:"facilities"`
}

// Total returns the sum of all sub-scores.
func (b ScoreBreakdown) Total() float64 {
	return b.Location + b.Type + b.Branch + b.Placement + b.Rank + b.Autonomy + b.Facilities
}

// Recommendation is an explained, ranked institution. Output only.
type Recommendation struct {
	Institution     Institution    `json:"institution"`
	MatchScore      int            `json:"match_score"`
	AdmissionChance int            `json:"admission_chance"`
	Breakdown       ScoreBreakdown `json:"breakdown"`
	Reasons         []string       `json:"reasons"`
	Pros            []string       `json:"pros"`
	Cons            []string       `json:"cons"`
	Reviews         *ReviewSummary `json:"reviews,omitempty"`
}
