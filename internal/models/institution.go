// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package models

import (
	"fmt"
	"strings"
)

// InstitutionType classifies how an institution is governed and funded.
type InstitutionType string

const (
	// TypeGovernment is a publicly funded institution.
	TypeGovernment InstitutionType = "Government"
	// TypePrivate is a privately funded institution.
	TypePrivate InstitutionType = "Private"
	// TypeAutonomous is an institution with academic autonomy.
	TypeAutonomous InstitutionType = "Autonomous"
	// TypeDeemed is a deemed-to-be university.
	TypeDeemed InstitutionType = "Deemed"
)

// InstitutionTypes lists every recognized institution type.
var InstitutionTypes = []InstitutionType{TypeGovernment, TypePrivate, TypeAutonomous, TypeDeemed}

// String returns the type name.
func (t InstitutionType) String() string {
	return string(t)
}

// Valid reports whether t is one of the recognized institution types.
func (t InstitutionType) Valid() bool {
	switch t {
	case TypeGovernment, TypePrivate, TypeAutonomous, TypeDeemed:
		return true
	default:
		return false
	}
}

// ParseInstitutionType parses a type name case-insensitively.
func ParseInstitutionType(s string) (InstitutionType, error) {
	for _, t := range InstitutionTypes {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown institution type %q", s)
}

// ExamType names an entrance examination (for example "JEE_MAIN").
type ExamType string

// Cutoffs maps exam type to branch name to the minimum admitted score.
type Cutoffs map[ExamType]map[string]float64

// Lookup returns the cutoff for an exam and branch. Exam and branch names
// are compared case-insensitively.
func (c Cutoffs) Lookup(exam ExamType, branch string) (float64, bool) {
	branches, ok := c[exam]
	if !ok {
		for name, b := range c {
			if strings.EqualFold(string(name), string(exam)) {
				branches, ok = b, true
				break
			}
		}
		if !ok {
			return 0, false
		}
	}
	if v, ok := branches[branch]; ok {
		return v, true
	}
	for name, v := range branches {
		if strings.EqualFold(name, branch) {
			return v, true
		}
	}
	return 0, false
}

// PlacementStats summarizes recorded placement outcomes.
type PlacementStats struct {
	// HighestPackage is the highest offer, in lakhs per annum.
	HighestPackage float64 `json:"highest_package" yaml:"highest_package"`

	// AveragePackage is the mean offer, in lakhs per annum.
	AveragePackage float64 `json:"average_package" yaml:"average_package"`

	// PlacementPercentage is the share of eligible students placed (0-100).
	PlacementPercentage float64 `json:"placement_percentage" yaml:"placement_percentage"`

	// TopRecruiters lists notable hiring companies.
	TopRecruiters []string `json:"top_recruiters,omitempty" yaml:"top_recruiters,omitempty"`
}

// Institution is immutable reference data owned by the catalog.
type Institution struct {
	// ID uniquely identifies the institution within the catalog.
	ID string `json:"id" yaml:"id"`

	// Name is the display name. Community posts are matched against it.
	Name string `json:"name" yaml:"name"`

	// City is the institution's city.
	City string `json:"city" yaml:"city"`

	// Region is the state or region used for location preferences.
	Region string `json:"region" yaml:"region"`

	// Type is the governance type.
	Type InstitutionType `json:"type" yaml:"type"`

	// EstablishedYear is the founding year.
	EstablishedYear int `json:"established_year,omitempty" yaml:"established_year,omitempty"`

	// Courses lists the branches offered.
	Courses []string `json:"courses" yaml:"courses"`

	// Cutoffs holds the admission cutoffs per exam and branch.
	Cutoffs Cutoffs `json:"cutoffs" yaml:"cutoffs"`

	// Rank is the national rank. Nil when unranked. Lower is better.
	Rank *int `json:"rank,omitempty" yaml:"rank,omitempty"`

	// Fees is the annual tuition. Nil when not recorded.
	Fees *float64 `json:"fees,omitempty" yaml:"fees,omitempty"`

	// Placement holds placement statistics. Nil when not recorded.
	Placement *PlacementStats `json:"placement,omitempty" yaml:"placement,omitempty"`

	// Facilities lists campus facilities.
	Facilities []string `json:"facilities,omitempty" yaml:"facilities,omitempty"`
}

// OffersCourse reports whether the institution lists the branch, compared
// case-insensitively.
func (i *Institution) OffersCourse(branch string) bool {
	for _, c := range i.Courses {
		if strings.EqualFold(c, branch) {
			return true
		}
	}
	return false
}

// IsAutonomous reports whether the institution has academic autonomy.
func (i *Institution) IsAutonomous() bool {
	return i.Type == TypeAutonomous
}

// Clone returns a deep copy so callers can never alias catalog data.
func (i *Institution) Clone() Institution {
	out := *i
	out.Courses = append([]string(nil), i.Courses...)
	out.Facilities = append([]string(nil), i.Facilities...)
	if i.Rank != nil {
		r := *i.Rank
		out.Rank = &r
	}
	if i.Fees != nil {
		f := *i.Fees
		out.Fees = &f
	}
	if i.Placement != nil {
		p := *i.Placement
		p.TopRecruiters = append([]string(nil), i.Placement.TopRecruiters...)
		out.Placement = &p
	}
	if i.Cutoffs != nil {
		out.Cutoffs = make(Cutoffs, len(i.Cutoffs))
		for exam, branches := range i.Cutoffs {
			m := make(map[string]float64, len(branches))
			for b, v := range branches {
				m[b] = v
			}
			out.Cutoffs[exam] = m
		}
	}
	return out
}
