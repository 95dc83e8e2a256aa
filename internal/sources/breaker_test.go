// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package sources

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/admitlens/internal/fetcher"
	"github.com/tomtom215/admitlens/internal/models"
)

type countingSource struct {
	name  string
	err   error
	calls atomic.Int32
}

func (s *countingSource) Name() string { return s.name }

func (s *countingSource) Search(context.Context, string) ([]models.CommunityPost, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return []models.CommunityPost{{ID: "1"}}, nil
}

func testBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		MinRequests:  3,
		FailureRatio: 0.5,
	}
}

func TestBreaker_OpensAfterFailures(t *testing.T) {
	t.Parallel()

	src := &countingSource{name: "breaker-open", err: fetcher.NewSourceError("breaker-open", fetcher.KindStatus, errors.New("HTTP 500"))}
	b := NewBreaker(src, testBreakerConfig(), zerolog.Nop())

	for i := 0; i < 3; i++ {
		if _, err := b.Search(context.Background(), "x"); err == nil {
			t.Fatal("expected failure")
		}
	}
	if b.State() != "open" {
		t.Fatalf("state = %s, want open", b.State())
	}

	_, err := b.Search(context.Background(), "x")
	if fetcher.KindOf(err) != fetcher.KindCircuitOpen {
		t.Errorf("kind = %s, want circuit_open", fetcher.KindOf(err))
	}
	if !errors.Is(err, fetcher.ErrSourceUnavailable) {
		t.Error("open circuit should be a source error")
	}
	if src.calls.Load() != 3 {
		t.Errorf("calls = %d, want 3 (open breaker must not call through)", src.calls.Load())
	}
}

func TestBreaker_PassesThroughSuccess(t *testing.T) {
	t.Parallel()

	src := &countingSource{name: "breaker-ok"}
	b := NewBreaker(src, testBreakerConfig(), zerolog.Nop())

	posts, err := b.Search(context.Background(), "x")
	if err != nil || len(posts) != 1 {
		t.Fatalf("Search = %v, %v", posts, err)
	}
	if b.Name() != "breaker-ok" || b.State() != "closed" {
		t.Errorf("name/state = %s/%s", b.Name(), b.State())
	}
}

// blockingSource waits for its context and returns the context error.
type blockingSource struct {
	name  string
	calls atomic.Int32
}

func (s *blockingSource) Name() string { return s.name }

func (s *blockingSource) Search(ctx context.Context, _ string) ([]models.CommunityPost, error) {
	s.calls.Add(1)
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestBreaker_CallerEndingQueryDoesNotTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
		want error
	}{
		{
			name: "caller deadline",
			ctx: func() (context.Context, context.CancelFunc) {
				return context.WithTimeout(context.Background(), time.Millisecond)
			},
			want: context.DeadlineExceeded,
		},
		{
			name: "caller deadline under a longer source timeout",
			ctx: func() (context.Context, context.CancelFunc) {
				parent, cancelParent := context.WithTimeout(context.Background(), time.Millisecond)
				ctx, cancel := fetcher.WithSourceTimeout(parent, time.Minute)
				return ctx, func() { cancel(); cancelParent() }
			},
			want: context.DeadlineExceeded,
		},
		{
			name: "caller cancel",
			ctx: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
			want: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := &blockingSource{name: "breaker-caller-" + strings.ReplaceAll(tt.name, " ", "-")}
			cfg := DefaultBreakerConfig()
			b := NewBreaker(src, cfg, zerolog.Nop())

			for i := 0; i < int(cfg.MinRequests)+2; i++ {
				ctx, cancel := tt.ctx()
				_, err := b.Search(ctx, "x")
				cancel()
				if !errors.Is(err, tt.want) {
					t.Fatalf("err = %v, want %v", err, tt.want)
				}
				if errors.Is(err, fetcher.ErrSourceUnavailable) {
					t.Fatalf("caller-ended query reported as source failure: %v", err)
				}
			}
			if b.State() != "closed" {
				t.Errorf("state = %s, want closed", b.State())
			}
			if got := src.calls.Load(); got != int32(cfg.MinRequests)+2 {
				t.Errorf("calls = %d, want %d", got, cfg.MinRequests+2)
			}
		})
	}
}

func TestBreaker_SourceTimeoutTrips(t *testing.T) {
	t.Parallel()

	src := &blockingSource{name: "breaker-source-timeout"}
	b := NewBreaker(src, testBreakerConfig(), zerolog.Nop())

	for i := 0; i < 3; i++ {
		ctx, cancel := fetcher.WithSourceTimeout(context.Background(), time.Millisecond)
		_, err := b.Search(ctx, "x")
		cancel()
		if fetcher.KindOf(err) != fetcher.KindTimeout || !errors.Is(err, fetcher.ErrSourceUnavailable) {
			t.Fatalf("err = %v, want a timeout source error", err)
		}
	}
	if b.State() != "open" {
		t.Errorf("state = %s, want open", b.State())
	}
}
