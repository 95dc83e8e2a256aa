// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/admitlens/internal/models"
)

// Source is an external community post provider. Search must be an
// idempotent read and must honor ctx cancellation.
type Source interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.CommunityPost, error)
}

// ErrSourceUnavailable matches every SourceError via errors.Is.
var ErrSourceUnavailable = errors.New("source unavailable")

// ErrorKind classifies why a source query failed.
type ErrorKind string

const (
	KindTimeout     ErrorKind = "timeout"
	KindNotFound    ErrorKind = "not_found"
	KindRateLimited ErrorKind = "rate_limited"
	KindStatus      ErrorKind = "status"
	KindDecode      ErrorKind = "decode"
	KindTransport   ErrorKind = "transport"
	KindCircuitOpen ErrorKind = "circuit_open"
)

// SourceError describes a failed source query.
type SourceError struct {
	Source string
	Kind   ErrorKind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %s %s: %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is makes every SourceError match ErrSourceUnavailable.
func (e *SourceError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// NewSourceError builds a SourceError.
func NewSourceError(source string, kind ErrorKind, err error) *SourceError {
	return &SourceError{Source: source, Kind: kind, Err: err}
}

// KindOf returns the kind of a SourceError, a timeout kind for deadline
// errors, or transport otherwise.
func KindOf(err error) ErrorKind {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindTransport
}

var errSourceTimeout = errors.New("source query timed out")

// WithSourceTimeout bounds one source query. A deadline inherited from ctx
// keeps its own cause, so SourceTimedOut can tell the two apart.
func WithSourceTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeoutCause(ctx, d, errSourceTimeout)
}

// SourceTimedOut reports whether ctx ended because the timeout set by
// WithSourceTimeout fired.
func SourceTimedOut(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), errSourceTimeout)
}

// AsTimeout wraps err as a timeout SourceError unless it already is one.
func AsTimeout(source string, err error) error {
	if KindOf(err) == KindTimeout {
		var se *SourceError
		if errors.As(err, &se) {
			return err
		}
	}
	return NewSourceError(source, KindTimeout, err)
}
