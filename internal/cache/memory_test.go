// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/admitlens/internal/models"
	"github.com/tomtom215/admitlens/internal/review"
)

var _ review.SummaryCache = Store(nil)

func sampleSummary(id string) *models.ReviewSummary {
	return &models.ReviewSummary{
		InstitutionID: id,
		TotalReviews:  4,
		SentimentDistribution: models.SentimentDistribution{
			Positive: 2, Negative: 1, Neutral: 1,
		},
		TopicRatings: map[models.Topic]models.TopicRating{
			models.TopicPlacements: {AverageRating: 3.75, MentionCount: 2, Sentiment: models.SentimentPositive},
		},
		AverageSentiment: 0.25,
		RecentTrend:      models.TrendImproving,
		GeneratedAt:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

// newTestMemoryStore returns a store whose clock the test controls.
func newTestMemoryStore(t *testing.T) (*MemoryStore, *time.Time) {
	t.Helper()
	m := NewMemoryStore(time.Hour)
	t.Cleanup(func() { _ = m.Close() })

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestMemoryStoreGetPut(t *testing.T) {
	t.Parallel()

	m, _ := newTestMemoryStore(t)
	ctx := context.Background()

	if _, ok, err := m.Get(ctx, "review:a"); ok || err != nil {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}

	want := sampleSummary("a")
	if err := m.Put(ctx, "review:a", want, time.Minute); err != nil {
		t.Fatal(err)
	}
	got, ok, err := m.Get(ctx, "review:a")
	if err != nil || !ok {
		t.Fatalf("Get after Put: ok=%v err=%v", ok, err)
	}
	if got.InstitutionID != "a" || got.TotalReviews != 4 {
		t.Errorf("got %+v", got)
	}

	stats := m.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Keys != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.HitRate() != 50 {
		t.Errorf("hit rate = %v", stats.HitRate())
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	t.Parallel()

	m, now := newTestMemoryStore(t)
	ctx := context.Background()

	_ = m.Put(ctx, "k", sampleSummary("a"), time.Minute)

	*now = now.Add(59 * time.Second)
	if _, ok, _ := m.Get(ctx, "k"); !ok {
		t.Fatal("entry expired early")
	}

	*now = now.Add(time.Second)
	if _, ok, _ := m.Get(ctx, "k"); ok {
		t.Fatal("entry served at its expiry instant")
	}
	if m.Stats().Evictions != 1 {
		t.Errorf("evictions = %d", m.Stats().Evictions)
	}
}

func TestMemoryStoreIgnoresInvalidPut(t *testing.T) {
	t.Parallel()

	m, _ := newTestMemoryStore(t)
	ctx := context.Background()

	_ = m.Put(ctx, "nil", nil, time.Minute)
	_ = m.Put(ctx, "zero-ttl", sampleSummary("a"), 0)
	if m.Stats().Keys != 0 {
		t.Errorf("keys = %d", m.Stats().Keys)
	}
}

func TestMemoryStoreExpireAndClear(t *testing.T) {
	t.Parallel()

	m, _ := newTestMemoryStore(t)
	ctx := context.Background()

	for i := range 3 {
		_ = m.Put(ctx, fmt.Sprintf("k%d", i), sampleSummary("a"), time.Minute)
	}
	if err := m.Expire(ctx, "k0"); err != nil {
		t.Fatal(err)
	}
	if err := m.Expire(ctx, "missing"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := m.Get(ctx, "k0"); ok {
		t.Error("k0 still present")
	}

	m.Clear()
	if m.Stats().Keys != 0 {
		t.Errorf("keys after Clear = %d", m.Stats().Keys)
	}
}

func TestMemoryStoreCleanup(t *testing.T) {
	t.Parallel()

	m, now := newTestMemoryStore(t)
	ctx := context.Background()

	_ = m.Put(ctx, "short", sampleSummary("a"), time.Second)
	_ = m.Put(ctx, "long", sampleSummary("b"), time.Hour)

	*now = now.Add(time.Minute)
	m.cleanup()

	s := m.Stats()
	if s.Keys != 1 || s.Evictions != 1 {
		t.Errorf("stats after cleanup = %+v", s)
	}
	if s.LastCleanup.IsZero() {
		t.Error("LastCleanup not set")
	}
}

func TestMemoryStoreConcurrent(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore(time.Millisecond)
	defer m.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for range 100 {
				_ = m.Put(ctx, key, sampleSummary(key), time.Minute)
				_, _, _ = m.Get(ctx, key)
				if i%5 == 0 {
					_ = m.Expire(ctx, key)
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestMemoryStoreCloseIdempotent(t *testing.T) {
	t.Parallel()

	m := NewMemoryStore(0)
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
	if err := m.Close(); err != nil {
		t.Fatal(err)
	}
}
