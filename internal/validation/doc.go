// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

// Package validation wraps go-playground/validator for request payloads.
//
// One validator instance is shared process-wide; it reports fields by their
// JSON names and registers the institution_type tag used on
// models.CandidatePreferences. Failures come back as *RequestValidationError,
// which the HTTP layer turns into a 400 with code VALIDATION_ERROR:
//
//	if verr := validation.ValidatePreferences(&prefs, knownExams); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
//
// ValidatePreferences adds the one rule struct tags cannot express: the exam
// type must be among the configured exams.
package validation
