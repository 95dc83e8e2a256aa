// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package sources

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/admitlens/internal/fetcher"
	"github.com/tomtom215/admitlens/internal/metrics"
	"github.com/tomtom215/admitlens/internal/models"
)

// BreakerConfig tunes the circuit breaker around a source.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open. Default: 3.
	MaxRequests uint32 `koanf:"max_requests"`

	// Interval clears counts while closed. Default: 1m.
	Interval time.Duration `koanf:"interval"`

	// Timeout is how long the breaker stays open. Default: 2m.
	Timeout time.Duration `koanf:"timeout"`

	// MinRequests before the failure ratio is considered. Default: 10.
	MinRequests uint32 `koanf:"min_requests"`

	// FailureRatio that opens the breaker. Default: 0.6.
	FailureRatio float64 `koanf:"failure_ratio"`
}

// DefaultBreakerConfig returns the default breaker settings.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// Breaker wraps a source with a circuit breaker so a persistently failing
// provider is skipped without spending its query timeout on every request.
type Breaker struct {
	next fetcher.Source
	cb   *gobreaker.CircuitBreaker[[]models.CommunityPost]
}

// NewBreaker decorates src.
func NewBreaker(src fetcher.Source, cfg BreakerConfig, logger zerolog.Logger) *Breaker {
	name := src.Name()
	log := logger.With().Str("component", "breaker").Str("source", name).Logger()

	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.CommunityPost](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
		IsExcluded: func(err error) bool {
			var gone *callerGone
			return errors.As(err, &gone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("from", stateToString(from)).Str("to", stateToString(to)).Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, stateToString(from), stateToString(to)).Inc()
		},
	})

	return &Breaker{next: src, cb: cb}
}

// Name implements fetcher.Source.
func (b *Breaker) Name() string {
	return b.next.Name()
}

// State returns the breaker state as a string.
func (b *Breaker) State() string {
	return stateToString(b.cb.State())
}

// Search implements fetcher.Source. A query cut short by the caller's
// cancellation or deadline is not counted against the source; only the
// per-source timeout set by fetcher.WithSourceTimeout is.
func (b *Breaker) Search(ctx context.Context, query string) ([]models.CommunityPost, error) {
	posts, err := b.cb.Execute(func() ([]models.CommunityPost, error) {
		found, err := b.next.Search(ctx, query)
		if err == nil || ctx.Err() == nil {
			return found, err
		}
		if fetcher.SourceTimedOut(ctx) {
			return nil, fetcher.AsTimeout(b.Name(), err)
		}
		return nil, &callerGone{err: err}
	})
	if err != nil {
		var gone *callerGone
		switch {
		case errors.As(err, &gone):
			metrics.CircuitBreakerRequests.WithLabelValues(b.Name(), "abandoned").Inc()
			return nil, gone.err
		case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
			metrics.CircuitBreakerRequests.WithLabelValues(b.Name(), "rejected").Inc()
			return nil, fetcher.NewSourceError(b.Name(), fetcher.KindCircuitOpen, err)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.Name(), "failure").Inc()
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.Name(), "success").Inc()
	return posts, nil
}

// callerGone marks an error caused by the caller giving up.
type callerGone struct {
	err error
}

func (e *callerGone) Error() string { return e.err.Error() }

func (e *callerGone) Unwrap() error { return e.err }

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
