// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package fetcher

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/admitlens/internal/logging"
	"github.com/tomtom215/admitlens/internal/metrics"
	"github.com/tomtom215/admitlens/internal/models"
)

type fakeSource struct {
	name  string
	posts []models.CommunityPost
	err   error
	delay time.Duration

	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Search(ctx context.Context, _ string) ([]models.CommunityPost, error) {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		m := s.maxSeen.Load()
		if n <= m || s.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.posts, nil
}

func testConfig() Config {
	return Config{SourceTimeout: time.Second, PoliteDelay: 0, MaxOutbound: 8}
}

func newTestFetcher(t *testing.T, cfg Config, sources ...Source) *Fetcher {
	t.Helper()
	f, err := New(cfg, sources, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func postIDs(posts []models.CommunityPost) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestFetch_CollectsMentionsFromAllSources(t *testing.T) {
	t.Parallel()

	a := &fakeSource{name: "collect-a", posts: []models.CommunityPost{
		{ID: "a1", Source: "collect-a", Title: "Thoughts on iit bombay"},
		{ID: "a2", Source: "collect-a", Title: "Unrelated post"},
	}}
	b := &fakeSource{name: "collect-b", posts: []models.CommunityPost{
		{ID: "b1", Source: "collect-b", Title: "Help", Body: "Is IIT BOMBAY worth it?"},
	}}

	got := newTestFetcher(t, testConfig(), a, b).Fetch(context.Background(), "IIT Bombay")
	if ids := strings.Join(postIDs(got), ","); ids != "a1,b1" {
		t.Errorf("ids = %s, want a1,b1", ids)
	}
}

func TestFetch_FailingSourceIsSwallowed(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	bad := &fakeSource{name: "swallow-bad", err: NewSourceError("swallow-bad", KindNotFound, errors.New("404"))}
	good := &fakeSource{name: "swallow-good", posts: []models.CommunityPost{{ID: "g1", Title: "NIT Trichy review"}}}

	f, err := New(testConfig(), []Source{bad, good}, logging.NewTestLogger(&buf))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got := f.Fetch(context.Background(), "NIT Trichy")
	if len(got) != 1 || got[0].ID != "g1" {
		t.Errorf("posts = %v, want [g1]", postIDs(got))
	}
	if bad.calls.Load() != 1 {
		t.Errorf("failing source called %d times, want exactly 1", bad.calls.Load())
	}
	if !strings.Contains(buf.String(), "Source unavailable") || !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Errorf("expected warning log, got %s", buf.String())
	}
	if v := testutil.ToFloat64(metrics.SourceQueries.WithLabelValues("swallow-bad", string(KindNotFound))); v != 1 {
		t.Errorf("not_found counter = %v, want 1", v)
	}
}

func TestFetch_SlowSourceTimesOut(t *testing.T) {
	t.Parallel()

	slow := &fakeSource{name: "timeout-slow", delay: 5 * time.Second}
	fast := &fakeSource{name: "timeout-fast", posts: []models.CommunityPost{{ID: "f1", Title: "BITS Pilani"}}}

	cfg := testConfig()
	cfg.SourceTimeout = 30 * time.Millisecond

	start := time.Now()
	got := newTestFetcher(t, cfg, slow, fast).Fetch(context.Background(), "BITS Pilani")
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("fetch took %s, per-source timeout not applied", elapsed)
	}
	if len(got) != 1 {
		t.Errorf("posts = %v, want [f1]", postIDs(got))
	}
	if v := testutil.ToFloat64(metrics.SourceQueries.WithLabelValues("timeout-slow", string(KindTimeout))); v != 1 {
		t.Errorf("timeout counter = %v, want 1", v)
	}
}

func TestFetch_CanceledContext(t *testing.T) {
	t.Parallel()

	src := &fakeSource{name: "cancel-src", posts: []models.CommunityPost{{ID: "x", Title: "VIT"}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := newTestFetcher(t, testConfig(), src).Fetch(ctx, "VIT"); len(got) != 0 {
		t.Errorf("posts = %v, want none", postIDs(got))
	}
	if src.calls.Load() != 0 {
		t.Errorf("source called %d times after cancellation", src.calls.Load())
	}
}

func TestFetch_NoSources(t *testing.T) {
	t.Parallel()

	if got := newTestFetcher(t, testConfig()).Fetch(context.Background(), "Anything"); len(got) != 0 {
		t.Errorf("posts = %v, want none", postIDs(got))
	}
}

func TestFetch_OutboundCap(t *testing.T) {
	t.Parallel()

	src := &fakeSource{name: "cap-src", delay: 20 * time.Millisecond}
	cfg := testConfig()
	cfg.MaxOutbound = 2
	f := newTestFetcher(t, cfg, src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Fetch(context.Background(), "College")
		}()
	}
	wg.Wait()

	if m := src.maxSeen.Load(); m > 2 {
		t.Errorf("max concurrent queries = %d, want <= 2", m)
	}
	if c := src.calls.Load(); c != 8 {
		t.Errorf("calls = %d, want 8", c)
	}
}

func TestFetch_PoliteDelaySpacesQueries(t *testing.T) {
	t.Parallel()

	src := &fakeSource{name: "polite-src"}
	cfg := testConfig()
	cfg.PoliteDelay = 40 * time.Millisecond
	f := newTestFetcher(t, cfg, src)

	start := time.Now()
	for i := 0; i < 3; i++ {
		f.Fetch(context.Background(), "College")
	}
	if elapsed := time.Since(start); elapsed < 70*time.Millisecond {
		t.Errorf("three queries took %s, want at least two polite delays", elapsed)
	}
}

func TestFilterMentions(t *testing.T) {
	t.Parallel()

	posts := []models.CommunityPost{
		{ID: "1", Source: "s", Title: "Anna University results"},
		{ID: "1", Source: "s", Title: "Anna University results"},
		{ID: "1", Source: "t", Title: "anna university again"},
		{ID: "2", Source: "s", Title: "Anna", Body: "University"},
		{ID: "", Source: "s", Body: "ANNA UNIVERSITY hostel"},
	}

	got := FilterMentions(posts, " Anna University ")
	if ids := strings.Join(postIDs(got), ","); ids != "1,1," {
		t.Errorf("ids = %q, want %q", ids, "1,1,")
	}
	if FilterMentions(posts, "  ") != nil {
		t.Error("blank name should match nothing")
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero timeout", func(c *Config) { c.SourceTimeout = 0 }, true},
		{"negative delay", func(c *Config) { c.PoliteDelay = -time.Millisecond }, true},
		{"zero outbound", func(c *Config) { c.MaxOutbound = 0 }, true},
		{"huge outbound", func(c *Config) { c.MaxOutbound = 1000 }, true},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestSourceError(t *testing.T) {
	t.Parallel()

	inner := errors.New("boom")
	err := error(NewSourceError("reddit", KindRateLimited, inner))

	if !errors.Is(err, ErrSourceUnavailable) {
		t.Error("SourceError should match ErrSourceUnavailable")
	}
	if !errors.Is(err, inner) {
		t.Error("SourceError should unwrap to its cause")
	}
	if KindOf(err) != KindRateLimited {
		t.Errorf("KindOf = %s, want rate_limited", KindOf(err))
	}
	if KindOf(context.DeadlineExceeded) != KindTimeout {
		t.Error("deadline errors should be timeouts")
	}
}

func TestFetch_SourcesRunConcurrently(t *testing.T) {
	t.Parallel()

	a := &fakeSource{name: "concurrent-a", delay: 200 * time.Millisecond, posts: []models.CommunityPost{{ID: "a1", Title: "Manipal"}}}
	b := &fakeSource{name: "concurrent-b", delay: 200 * time.Millisecond, posts: []models.CommunityPost{{ID: "b1", Title: "Manipal"}}}
	c := &fakeSource{name: "concurrent-c", delay: 200 * time.Millisecond, posts: []models.CommunityPost{{ID: "c1", Title: "Manipal"}}}

	start := time.Now()
	got := newTestFetcher(t, testConfig(), a, b, c).Fetch(context.Background(), "Manipal")
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("three 200ms sources took %s, want them queried in parallel", elapsed)
	}
	if ids := strings.Join(postIDs(got), ","); ids != "a1,b1,c1" {
		t.Errorf("ids = %s, want source order a1,b1,c1", ids)
	}
}

func TestSourceTimedOut(t *testing.T) {
	t.Parallel()

	t.Run("own timeout", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := WithSourceTimeout(context.Background(), time.Millisecond)
		defer cancel()
		<-ctx.Done()
		if !SourceTimedOut(ctx) {
			t.Error("SourceTimedOut = false after the source timeout fired")
		}
	})

	t.Run("caller deadline", func(t *testing.T) {
		t.Parallel()

		parent, cancelParent := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancelParent()
		ctx, cancel := WithSourceTimeout(parent, time.Minute)
		defer cancel()
		<-ctx.Done()
		if SourceTimedOut(ctx) {
			t.Error("SourceTimedOut = true for a deadline inherited from the caller")
		}
		if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			t.Errorf("err = %v, want deadline exceeded", ctx.Err())
		}
	})

	t.Run("caller cancel", func(t *testing.T) {
		t.Parallel()

		parent, cancelParent := context.WithCancel(context.Background())
		ctx, cancel := WithSourceTimeout(parent, time.Minute)
		defer cancel()
		cancelParent()
		if SourceTimedOut(ctx) {
			t.Error("SourceTimedOut = true after caller cancellation")
		}
	})
}

func TestAsTimeout(t *testing.T) {
	t.Parallel()

	wrapped := AsTimeout("src", context.DeadlineExceeded)
	if KindOf(wrapped) != KindTimeout || !errors.Is(wrapped, ErrSourceUnavailable) {
		t.Errorf("AsTimeout(deadline) = %v", wrapped)
	}
	if again := AsTimeout("src", wrapped); again != wrapped {
		t.Errorf("AsTimeout rewrapped an existing timeout error: %v", again)
	}
	transport := NewSourceError("src", KindTransport, context.DeadlineExceeded)
	if KindOf(AsTimeout("src", transport)) != KindTimeout {
		t.Error("transport error not re-kinded as timeout")
	}
}
