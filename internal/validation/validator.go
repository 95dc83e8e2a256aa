// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/admitlens/internal/models"
)

// CodeValidation is the API error code for every validation failure.
const CodeValidation = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError is one failed field.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   any
	message string
}

func (e *ValidationError) Field() string { return e.field }
func (e *ValidationError) Tag() string   { return e.tag }
func (e *ValidationError) Param() string { return e.param }
func (e *ValidationError) Value() any    { return e.value }
func (e *ValidationError) Error() string { return e.message }

// RequestValidationError collects every failed field of one request.
type RequestValidationError struct {
	errors []ValidationError
}

// NewFieldError builds a single-field error for checks that have no tag.
func NewFieldError(field, tag string, value any, message string) *RequestValidationError {
	return &RequestValidationError{errors: []ValidationError{{
		field:   field,
		tag:     tag,
		value:   value,
		message: message,
	}}}
}

func (ve *RequestValidationError) Errors() []ValidationError {
	return ve.errors
}

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i := range ve.errors {
		msgs[i] = ve.errors[i].message
	}
	return strings.Join(msgs, "; ")
}

// HasField reports whether field failed. A nil receiver has no failures.
func (ve *RequestValidationError) HasField(field string) bool {
	if ve == nil {
		return false
	}
	for i := range ve.errors {
		if ve.errors[i].field == field {
			return true
		}
	}
	return false
}

// APIError mirrors the HTTP error envelope without importing the api package.
type APIError struct {
	Code    string
	Message string
	Details map[string]any
}

// ToAPIError renders the collected failures for an HTTP 400 body.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: CodeValidation, Message: "Validation failed"}
	case 1:
		e := ve.errors[0]
		return &APIError{
			Code:    CodeValidation,
			Message: e.message,
			Details: map[string]any{"field": e.field, "tag": e.tag, "value": e.value},
		}
	}

	fields := make([]map[string]any, len(ve.errors))
	for i, e := range ve.errors {
		fields[i] = map[string]any{"field": e.field, "tag": e.tag, "message": e.message}
	}
	return &APIError{
		Code:    CodeValidation,
		Message: ve.Error(),
		Details: map[string]any{"fields": fields},
	}
}

// GetValidator returns the shared validator with the custom tags registered.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names so messages match the request body.
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})

		if err := validate.RegisterValidation("institution_type", validInstitutionType); err != nil {
			panic(fmt.Sprintf("validation: register institution_type: %v", err))
		}
	})
	return validate
}

func validInstitutionType(fl validator.FieldLevel) bool {
	switch v := fl.Field().Interface().(type) {
	case models.InstitutionType:
		return v.Valid()
	case string:
		return models.InstitutionType(v).Valid()
	default:
		return false
	}
}

// ValidateStruct runs the struct tags of s. It returns nil when s is valid.
func ValidateStruct(s any) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewFieldError("unknown", "unknown", nil, err.Error())
	}

	out := make([]ValidationError, len(fieldErrs))
	for i, fe := range fieldErrs {
		out[i] = ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: translateError(fe),
		}
	}
	return &RequestValidationError{errors: out}
}

// ValidatePreferences checks the struct tags of p and, when knownExams is
// non-empty, that p.ExamType is one of them (case-insensitive). A matching
// exam is rewritten to the spelling in knownExams.
func ValidatePreferences(p *models.CandidatePreferences, knownExams []models.ExamType) *RequestValidationError {
	if p == nil {
		return NewFieldError("preferences", "required", nil, "preferences is required")
	}

	verr := ValidateStruct(p)
	if p.ExamType == "" || len(knownExams) == 0 || verr.HasField("exam_type") {
		return verr
	}

	for _, known := range knownExams {
		if strings.EqualFold(string(known), string(p.ExamType)) {
			p.ExamType = known
			return verr
		}
	}

	names := make([]string, len(knownExams))
	for i, k := range knownExams {
		names[i] = string(k)
	}
	unknown := ValidationError{
		field:   "exam_type",
		tag:     "known_exam",
		param:   strings.Join(names, " "),
		value:   string(p.ExamType),
		message: fmt.Sprintf("exam_type %q is not recognised (known: %s)", p.ExamType, strings.Join(names, ", ")),
	}
	if verr == nil {
		return &RequestValidationError{errors: []ValidationError{unknown}}
	}
	verr.errors = append(verr.errors, unknown)
	return verr
}

var simpleMessages = map[string]string{
	"required":         "%s is required",
	"institution_type": "%s must be one of: Government, Private, Autonomous, Deemed",
	"unique":           "%s must not contain duplicates",
}

var paramMessages = map[string]string{
	"oneof": "%s must be one of: %s",
	"gte":   "%s must be greater than or equal to %s",
	"lte":   "%s must be less than or equal to %s",
	"gt":    "%s must be greater than %s",
	"lt":    "%s must be less than %s",
}

func translateError(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()

	if tmpl, ok := simpleMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := paramMessages[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}

	verb, unit := "be", ""
	switch fe.Kind() {
	case reflect.String:
		verb, unit = "have", " characters"
	case reflect.Slice, reflect.Map, reflect.Array:
		verb, unit = "have", " entries"
	}
	switch tag {
	case "min":
		return fmt.Sprintf("%s must %s at least %s%s", field, verb, param, unit)
	case "max":
		return fmt.Sprintf("%s must %s at most %s%s", field, verb, param, unit)
	default:
		return fmt.Sprintf("%s failed %s validation", field, tag)
	}
}
