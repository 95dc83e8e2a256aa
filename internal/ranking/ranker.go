// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

// Package ranking orders scored institutions and explains each placement.
package ranking

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tomtom215/admitlens/internal/eligibility"
	"github.com/tomtom215/admitlens/internal/models"
)

// Thresholds used for reasons, pros and cons.
const (
	excellentMatch     = 80
	reasonRankCutoff   = 100
	strongPlacementPct = 80.0
	weakPlacementPct   = 60.0
	topRankCutoff      = 50
	lowRankCutoff      = 200
	strongAvgPackage   = 10.0
	manyFacilities     = 8
	fewFacilities      = 5
	reviewLean         = 0.3
)

// Ranker is stateless and safe for concurrent use.
type Ranker struct{}

// New returns a Ranker.
func New() *Ranker {
	return &Ranker{}
}

// Sort orders scored institutions by match score descending, then admission
// chance descending, then name and ID ascending.
func Sort(scored []eligibility.Scored, chances map[string]int) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := &scored[i], &scored[j]
		if a.MatchScore != b.MatchScore {
			return a.MatchScore > b.MatchScore
		}
		ca, cb := chances[a.Institution.ID], chances[b.Institution.ID]
		if ca != cb {
			return ca > cb
		}
		if a.Institution.Name != b.Institution.Name {
			return a.Institution.Name < b.Institution.Name
		}
		return a.Institution.ID < b.Institution.ID
	})
}

// Rank builds the ordered recommendation list. Institutions without an
// admission chance are left out, and each institution appears at most once.
// The input slice is not modified.
func (r *Ranker) Rank(scored []eligibility.Scored, chances map[string]int, summaries map[string]*models.ReviewSummary) []models.Recommendation {
	ordered := make([]eligibility.Scored, 0, len(scored))
	seen := make(map[string]struct{}, len(scored))
	for _, s := range scored {
		if _, ok := chances[s.Institution.ID]; !ok {
			continue
		}
		if _, dup := seen[s.Institution.ID]; dup {
			continue
		}
		seen[s.Institution.ID] = struct{}{}
		ordered = append(ordered, s)
	}
	Sort(ordered, chances)

	out := make([]models.Recommendation, 0, len(ordered))
	for i := range ordered {
		s := &ordered[i]
		summary := summaries[s.Institution.ID]
		out = append(out, models.Recommendation{
			Institution:     s.Institution,
			MatchScore:      clampPercent(s.MatchScore),
			AdmissionChance: clampPercent(chances[s.Institution.ID]),
			Breakdown:       s.Breakdown,
			Reasons:         Reasons(s),
			Pros:            Pros(&s.Institution, summary),
			Cons:            Cons(&s.Institution, summary),
			Reviews:         summary,
		})
	}
	return out
}

// Reasons explains a recommendation. Checks run in a fixed order.
func Reasons(s *eligibility.Scored) []string {
	inst := &s.Institution
	reasons := make([]string, 0, 4)

	if s.MatchScore >= excellentMatch {
		reasons = append(reasons, "Excellent match for your preferences")
	}
	if s.Breakdown.Location == eligibility.LocationPoints {
		reasons = append(reasons, fmt.Sprintf("Located in your preferred region (%s)", inst.Region))
	}
	if inst.Rank != nil && *inst.Rank <= reasonRankCutoff {
		reasons = append(reasons, fmt.Sprintf("Ranked #%d nationally", *inst.Rank))
	}
	if inst.Placement != nil && inst.Placement.PlacementPercentage >= strongPlacementPct {
		reasons = append(reasons, fmt.Sprintf("Strong placement record (%s%% placed)", formatNumber(inst.Placement.PlacementPercentage)))
	}
	if inst.Type == models.TypeGovernment {
		reasons = append(reasons, "Government institution with lower fees")
	}
	if inst.IsAutonomous() {
		reasons = append(reasons, "Autonomous institution with academic flexibility")
	}
	if len(s.OfferedBranches) > 0 {
		reasons = append(reasons, "Offers your preferred branches: "+strings.Join(s.OfferedBranches, ", "))
	}
	return reasons
}

// Pros lists strengths. summary may be nil.
func Pros(inst *models.Institution, summary *models.ReviewSummary) []string {
	pros := make([]string, 0, 4)

	if p := inst.Placement; p != nil {
		if p.PlacementPercentage >= strongPlacementPct {
			pros = append(pros, fmt.Sprintf("Excellent placement rate (%s%%)", formatNumber(p.PlacementPercentage)))
		}
		if p.AveragePackage >= strongAvgPackage {
			pros = append(pros, fmt.Sprintf("Strong average package (%s LPA)", formatNumber(p.AveragePackage)))
		}
	}
	if inst.Rank != nil && *inst.Rank <= topRankCutoff {
		pros = append(pros, "Top 50 nationally ranked institution")
	}
	if inst.Type == models.TypeGovernment {
		pros = append(pros, "Affordable government fee structure")
	}
	if inst.IsAutonomous() {
		pros = append(pros, "Academic autonomy and flexible curriculum")
	}
	if len(inst.Facilities) >= manyFacilities {
		pros = append(pros, "Wide range of campus facilities")
	}
	if hasReviews(summary) {
		if summary.AverageSentiment > reviewLean {
			pros = append(pros, "Mostly positive student reviews")
		}
		if summary.RecentTrend == models.TrendImproving {
			pros = append(pros, "Recent student sentiment is improving")
		}
	}
	return pros
}

// Cons lists weaknesses. summary may be nil.
func Cons(inst *models.Institution, summary *models.ReviewSummary) []string {
	cons := make([]string, 0, 4)

	switch p := inst.Placement; {
	case p == nil:
		cons = append(cons, "No placement data available")
	case p.PlacementPercentage < weakPlacementPct:
		cons = append(cons, fmt.Sprintf("Low placement rate (%s%%)", formatNumber(p.PlacementPercentage)))
	}
	if inst.Rank == nil || *inst.Rank > lowRankCutoff {
		cons = append(cons, "Lower ranking")
	}
	if inst.Type == models.TypePrivate || inst.Type == models.TypeDeemed {
		cons = append(cons, "Higher fees than government institutions")
	}
	if len(inst.Facilities) < fewFacilities {
		cons = append(cons, "Limited campus facilities")
	}
	if hasReviews(summary) {
		if summary.AverageSentiment < -reviewLean {
			cons = append(cons, "Mostly negative student reviews")
		}
		if summary.RecentTrend == models.TrendDeclining {
			cons = append(cons, "Recent student sentiment is declining")
		}
	}
	return cons
}

func hasReviews(s *models.ReviewSummary) bool {
	return s != nil && s.TotalReviews > 0
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
