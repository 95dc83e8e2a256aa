// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/admitlens/internal/models"
)

// DefaultCleanupInterval is how often MemoryStore sweeps expired entries.
const DefaultCleanupInterval = 5 * time.Minute

type entry struct {
	summary   *models.ReviewSummary
	expiresAt time.Time
}

// Stats is a point-in-time snapshot of MemoryStore counters.
type Stats struct {
	Hits        int64
	Misses      int64
	Evictions   int64
	Keys        int
	LastCleanup time.Time
}

// HitRate returns hits as a percentage of lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// MemoryStore is a process-local TTL map. A background goroutine sweeps
// expired entries until Close is called.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time

	statsMu sync.Mutex
	stats   Stats

	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryStore starts a store that sweeps every interval. A non-positive
// interval uses DefaultCleanupInterval.
func NewMemoryStore(interval time.Duration) *MemoryStore {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	m := &MemoryStore{
		entries: make(map[string]entry),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	go m.cleanupLoop(interval)
	return m
}

// Get returns the summary stored under key. Expired entries are removed and
// reported as misses.
func (m *MemoryStore) Get(_ context.Context, key string) (*models.ReviewSummary, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		m.count(func(s *Stats) { s.Misses++ })
		return nil, false, nil
	}

	if !m.now().Before(e.expiresAt) {
		m.mu.Lock()
		// Re-check: a concurrent Put may have refreshed it.
		if cur, still := m.entries[key]; still && !m.now().Before(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		m.count(func(s *Stats) { s.Misses++; s.Evictions++ })
		return nil, false, nil
	}

	m.count(func(s *Stats) { s.Hits++ })
	return e.summary, true, nil
}

// Put stores summary under key until ttl elapses.
func (m *MemoryStore) Put(_ context.Context, key string, summary *models.ReviewSummary, ttl time.Duration) error {
	if summary == nil || ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	m.entries[key] = entry{summary: summary, expiresAt: m.now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Expire drops key. Missing keys are not an error.
func (m *MemoryStore) Expire(_ context.Context, key string) error {
	m.mu.Lock()
	_, ok := m.entries[key]
	delete(m.entries, key)
	m.mu.Unlock()

	if ok {
		m.count(func(s *Stats) { s.Evictions++ })
	}
	return nil
}

// Clear drops every entry.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	n := len(m.entries)
	m.entries = make(map[string]entry)
	m.mu.Unlock()

	m.count(func(s *Stats) { s.Evictions += int64(n) })
}

// Stats returns a snapshot of the counters.
func (m *MemoryStore) Stats() Stats {
	m.mu.RLock()
	keys := len(m.entries)
	m.mu.RUnlock()

	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	s := m.stats
	s.Keys = keys
	return s
}

// Close stops the sweeper. The store remains readable afterwards.
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() { close(m.stop) })
	return nil
}

func (m *MemoryStore) count(f func(*Stats)) {
	m.statsMu.Lock()
	f(&m.stats)
	m.statsMu.Unlock()
}

func (m *MemoryStore) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

func (m *MemoryStore) cleanup() {
	now := m.now()

	m.mu.Lock()
	var evicted int64
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
			evicted++
		}
	}
	m.mu.Unlock()

	m.count(func(s *Stats) {
		s.Evictions += evicted
		s.LastCleanup = now
	})
}
