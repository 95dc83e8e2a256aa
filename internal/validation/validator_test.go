// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/admitlens/internal/models"
)

var knownExams = []models.ExamType{"JEE_MAIN", "MHT_CET"}

func validPrefs() models.CandidatePreferences {
	return models.CandidatePreferences{
		ExamType:          "JEE_MAIN",
		Score:             92.5,
		BranchPreferences: []string{"Computer Science", "Electronics"},
	}
}

func TestGetValidatorSingleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator returned different instances")
	}
}

func TestValidatePreferences(t *testing.T) {
	t.Parallel()

	fees := -1.0
	tests := []struct {
		name      string
		mutate    func(p *models.CandidatePreferences)
		wantField string
	}{
		{name: "valid", mutate: func(*models.CandidatePreferences) {}},
		{
			name:   "exam type is case-insensitive",
			mutate: func(p *models.CandidatePreferences) { p.ExamType = "jee_main" },
		},
		{
			name:      "zero score",
			mutate:    func(p *models.CandidatePreferences) { p.Score = 0 },
			wantField: "score",
		},
		{
			name:      "negative score",
			mutate:    func(p *models.CandidatePreferences) { p.Score = -3 },
			wantField: "score",
		},
		{
			name:      "empty branch list",
			mutate:    func(p *models.CandidatePreferences) { p.BranchPreferences = nil },
			wantField: "branch_preferences",
		},
		{
			name:      "blank branch entry",
			mutate:    func(p *models.CandidatePreferences) { p.BranchPreferences = []string{""} },
			wantField: "branch_preferences[0]",
		},
		{
			name:      "missing exam type",
			mutate:    func(p *models.CandidatePreferences) { p.ExamType = "" },
			wantField: "exam_type",
		},
		{
			name:      "unknown exam type",
			mutate:    func(p *models.CandidatePreferences) { p.ExamType = "SAT" },
			wantField: "exam_type",
		},
		{
			name: "bad institution type",
			mutate: func(p *models.CandidatePreferences) {
				p.InstitutionTypePreferences = []models.InstitutionType{models.TypePrivate, "Online"}
			},
			wantField: "institution_type_preferences[1]",
		},
		{
			name:      "non-positive max fees",
			mutate:    func(p *models.CandidatePreferences) { p.MaxFees = &fees },
			wantField: "max_fees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := validPrefs()
			tt.mutate(&p)
			verr := ValidatePreferences(&p, knownExams)

			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("unexpected error: %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatalf("expected error on %s", tt.wantField)
			}
			if !verr.HasField(tt.wantField) {
				t.Errorf("fields %v do not include %s", fieldNames(verr), tt.wantField)
			}
		})
	}
}

func TestValidatePreferencesWithoutKnownExams(t *testing.T) {
	t.Parallel()

	p := validPrefs()
	p.ExamType = "ANYTHING"
	if verr := ValidatePreferences(&p, nil); verr != nil {
		t.Errorf("no exam list configured, got %v", verr)
	}
}

func TestValidatePreferencesCanonicalizesExam(t *testing.T) {
	t.Parallel()

	for _, in := range []models.ExamType{"jee_main", "Jee_Main", "JEE_MAIN"} {
		p := validPrefs()
		p.ExamType = in
		if verr := ValidatePreferences(&p, knownExams); verr != nil {
			t.Fatalf("%s: unexpected error %v", in, verr)
		}
		if p.ExamType != "JEE_MAIN" {
			t.Errorf("%s: exam = %s, want JEE_MAIN", in, p.ExamType)
		}
	}
}

func TestValidatePreferencesNil(t *testing.T) {
	t.Parallel()

	verr := ValidatePreferences(nil, knownExams)
	if verr == nil || !verr.HasField("preferences") {
		t.Fatalf("got %v", verr)
	}
}

func TestValidatePreferencesCollectsAll(t *testing.T) {
	t.Parallel()

	p := models.CandidatePreferences{ExamType: "GRE"}
	verr := ValidatePreferences(&p, knownExams)
	if verr == nil {
		t.Fatal("expected errors")
	}
	for _, f := range []string{"score", "branch_preferences", "exam_type"} {
		if !verr.HasField(f) {
			t.Errorf("missing %s in %v", f, fieldNames(verr))
		}
	}
}

func TestToAPIError(t *testing.T) {
	t.Parallel()

	single := NewFieldError("score", "gt", -1.0, "score must be greater than 0")
	apiErr := single.ToAPIError()
	if apiErr.Code != CodeValidation {
		t.Errorf("code = %s", apiErr.Code)
	}
	if apiErr.Details["field"] != "score" {
		t.Errorf("details = %v", apiErr.Details)
	}

	p := models.CandidatePreferences{}
	multi := ValidateStruct(&p).ToAPIError()
	fields, ok := multi.Details["fields"].([]map[string]any)
	if !ok || len(fields) < 2 {
		t.Fatalf("details = %v", multi.Details)
	}
	if !strings.Contains(multi.Message, ";") {
		t.Errorf("message %q does not join fields", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty message = %q", empty.Message)
	}
}

func TestTranslatedMessages(t *testing.T) {
	t.Parallel()

	p := validPrefs()
	p.Score = 0
	p.InstitutionTypePreferences = []models.InstitutionType{"Online"}

	verr := ValidateStruct(&p)
	if verr == nil {
		t.Fatal("expected errors")
	}
	msg := verr.Error()
	for _, want := range []string{
		"score must be greater than 0",
		"must be one of: Government, Private, Autonomous, Deemed",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func fieldNames(verr *RequestValidationError) []string {
	var out []string
	for _, e := range verr.Errors() {
		out = append(out, e.Field())
	}
	return out
}
