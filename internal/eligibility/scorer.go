// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

// Package eligibility filters institutions a candidate can plausibly reach
// and scores how well each one fits the candidate's stated preferences.
package eligibility

import (
	"fmt"
	"math"

	"github.com/tomtom215/admitlens/internal/models"
)

// DefaultFloor is the fraction of a cutoff a score must reach for the
// institution to stay in consideration.
const DefaultFloor = 0.8

// Sub-score caps. They sum to MaxPoints.
const (
	LocationPoints   = 25.0
	TypePoints       = 15.0
	BranchPoints     = 20.0
	PlacementPoints  = 20.0
	RankPoints       = 10.0
	AutonomyPoints   = 5.0
	FacilitiesPoints = 5.0

	MaxPoints = LocationPoints + TypePoints + BranchPoints + PlacementPoints +
		RankPoints + AutonomyPoints + FacilitiesPoints

	// Partial credit when the candidate expressed no preference.
	noLocationPreferencePoints = 15.0
	noTypePreferencePoints     = 10.0

	// facilityBreadth is the facility count that earns full facility points.
	facilityBreadth = 10.0
)

// Scored is an eligible institution with its match score.
type Scored struct {
	Institution models.Institution
	MatchScore  int
	Breakdown   models.ScoreBreakdown

	// QualifyingBranches are the preferred branches whose cutoff the
	// candidate reaches within the floor, in preference order.
	QualifyingBranches []string

	// OfferedBranches are the preferred branches the institution offers.
	OfferedBranches []string
}

// Scorer applies the eligibility floor and the weighted match score.
type Scorer struct {
	floor float64
}

// NewScorer creates a scorer with the given floor, a fraction in (0, 1].
func NewScorer(floor float64) (*Scorer, error) {
	if floor <= 0 || floor > 1 {
		return nil, fmt.Errorf("eligibility floor must be in (0, 1], got %f", floor)
	}
	return &Scorer{floor: floor}, nil
}

// Floor returns the configured floor.
func (s *Scorer) Floor() float64 {
	return s.floor
}

// FilterAndScore returns the eligible institutions with their scores, in
// catalog order. Institutions are copied so callers never alias catalog data.
func (s *Scorer) FilterAndScore(catalog []models.Institution, prefs *models.CandidatePreferences) []Scored {
	out := make([]Scored, 0, len(catalog))
	for i := range catalog {
		inst := &catalog[i]

		if exceedsFees(inst, prefs) {
			continue
		}
		qualifying := s.qualifyingBranches(inst, prefs)
		if len(qualifying) == 0 {
			continue
		}

		offered := offeredBranches(inst, prefs)
		breakdown := Breakdown(inst, prefs, len(offered))

		out = append(out, Scored{
			Institution:        inst.Clone(),
			MatchScore:         finalScore(breakdown),
			Breakdown:          breakdown,
			QualifyingBranches: qualifying,
			OfferedBranches:    offered,
		})
	}
	return out
}

// Eligible reports whether at least one preferred branch has a recorded
// cutoff the score reaches within the floor.
func (s *Scorer) Eligible(inst *models.Institution, prefs *models.CandidatePreferences) bool {
	return len(s.qualifyingBranches(inst, prefs)) > 0
}

func (s *Scorer) qualifyingBranches(inst *models.Institution, prefs *models.CandidatePreferences) []string {
	var out []string
	for _, branch := range prefs.BranchPreferences {
		cutoff, ok := inst.Cutoffs.Lookup(prefs.ExamType, branch)
		if !ok || cutoff <= 0 {
			continue
		}
		if prefs.Score >= s.floor*cutoff {
			out = append(out, branch)
		}
	}
	return out
}

func exceedsFees(inst *models.Institution, prefs *models.CandidatePreferences) bool {
	return prefs.MaxFees != nil && inst.Fees != nil && *inst.Fees > *prefs.MaxFees
}

// offeredBranches lists preferred branches the institution teaches or holds
// a cutoff for under the candidate's exam.
func offeredBranches(inst *models.Institution, prefs *models.CandidatePreferences) []string {
	var out []string
	for _, branch := range prefs.BranchPreferences {
		if inst.OffersCourse(branch) {
			out = append(out, branch)
			continue
		}
		if _, ok := inst.Cutoffs.Lookup(prefs.ExamType, branch); ok {
			out = append(out, branch)
		}
	}
	return out
}

// Breakdown computes the six sub-scores.
func Breakdown(inst *models.Institution, prefs *models.CandidatePreferences, offered int) models.ScoreBreakdown {
	var b models.ScoreBreakdown

	switch {
	case len(prefs.LocationPreferences) == 0:
		b.Location = noLocationPreferencePoints
	case prefs.PrefersRegion(inst.Region):
		b.Location = LocationPoints
	}

	switch {
	case len(prefs.InstitutionTypePreferences) == 0:
		b.Type = noTypePreferencePoints
	case prefs.PrefersType(inst.Type):
		b.Type = TypePoints
	}

	if n := len(prefs.BranchPreferences); n > 0 {
		b.Branch = BranchPoints * float64(offered) / float64(n)
	}

	if inst.Placement != nil {
		b.Placement = PlacementPoints * math.Max(0, math.Min(inst.Placement.PlacementPercentage, 100)) / 100
	}

	b.Rank = rankPoints(inst.Rank)

	if inst.IsAutonomous() {
		b.Autonomy = AutonomyPoints
	}
	b.Facilities = math.Min(float64(len(inst.Facilities))/facilityBreadth*FacilitiesPoints, FacilitiesPoints)

	return b
}

func rankPoints(rank *int) float64 {
	switch {
	case rank == nil:
		return 0
	case *rank <= 50:
		return 10
	case *rank <= 100:
		return 8
	case *rank <= 200:
		return 5
	default:
		return 2
	}
}

func finalScore(b models.ScoreBreakdown) int {
	score := math.Round(100 * b.Total() / MaxPoints)
	return int(math.Max(0, math.Min(score, 100)))
}
