// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

// Package admission maps the distance between a candidate's score and a
// cutoff onto a coarse admission chance.
package admission

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tomtom215/admitlens/internal/models"
)

var (
	// ErrNoCutoff is returned when the primary branch has no cutoff.
	ErrNoCutoff = errors.New("no cutoff for primary branch")

	// ErrInvalidCutoff is returned for a cutoff that is not positive.
	ErrInvalidCutoff = errors.New("cutoff must be positive")
)

// Band maps every percentAboveCutoff >= MinPercent to Chance.
type Band struct {
	MinPercent float64 `json:"min_percent" koanf:"min_percent"`
	Chance     int     `json:"chance" koanf:"chance"`
}

// DefaultBands is the band table, highest threshold first.
var DefaultBands = []Band{
	{MinPercent: 20, Chance: 95},
	{MinPercent: 10, Chance: 85},
	{MinPercent: 5, Chance: 75},
	{MinPercent: 0, Chance: 60},
	{MinPercent: -5, Chance: 45},
	{MinPercent: -10, Chance: 30},
	{MinPercent: -20, Chance: 15},
}

// DefaultFloorChance applies below the lowest band.
const DefaultFloorChance = 5

// Estimator evaluates bands top-down; the first band whose threshold is met
// wins.
type Estimator struct {
	bands []Band
	floor int
}

// NewEstimator validates and sorts the bands.
func NewEstimator(bands []Band, floorChance int) (*Estimator, error) {
	if len(bands) == 0 {
		return nil, errors.New("at least one admission band is required")
	}
	if floorChance < 0 || floorChance > 100 {
		return nil, fmt.Errorf("floor chance must be in [0, 100], got %d", floorChance)
	}

	sorted := append([]Band(nil), bands...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinPercent > sorted[j].MinPercent })

	for i, b := range sorted {
		if b.Chance < 0 || b.Chance > 100 {
			return nil, fmt.Errorf("band %d chance must be in [0, 100], got %d", i, b.Chance)
		}
		if i > 0 && b.MinPercent == sorted[i-1].MinPercent {
			return nil, fmt.Errorf("duplicate band threshold %f", b.MinPercent)
		}
	}
	return &Estimator{bands: sorted, floor: floorChance}, nil
}

// NewDefault returns an estimator over DefaultBands.
func NewDefault() *Estimator {
	e, err := NewEstimator(DefaultBands, DefaultFloorChance)
	if err != nil {
		panic(err) // default table is valid
	}
	return e
}

// PercentAboveCutoff returns 100 * (score - cutoff) / cutoff.
func PercentAboveCutoff(score, cutoff float64) (float64, error) {
	if cutoff <= 0 {
		return 0, ErrInvalidCutoff
	}
	return 100 * (score - cutoff) / cutoff, nil
}

// Estimate returns the admission chance in [0, 100].
func (e *Estimator) Estimate(score, cutoff float64) (int, error) {
	pct, err := PercentAboveCutoff(score, cutoff)
	if err != nil {
		return 0, err
	}
	return e.ForPercent(pct), nil
}

// ForPercent maps a percent-above-cutoff value onto the band table.
func (e *Estimator) ForPercent(pct float64) int {
	for _, b := range e.bands {
		if pct >= b.MinPercent {
			return b.Chance
		}
	}
	return e.floor
}

// ForInstitution estimates against the cutoff of the candidate's primary
// branch. It returns ErrNoCutoff when the institution records none.
func (e *Estimator) ForInstitution(inst *models.Institution, prefs *models.CandidatePreferences) (int, error) {
	cutoff, ok := inst.Cutoffs.Lookup(prefs.ExamType, prefs.PrimaryBranch())
	if !ok {
		return 0, ErrNoCutoff
	}
	return e.Estimate(prefs.Score, cutoff)
}
