// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/tomtom215/admitlens/internal/metrics"
	"github.com/tomtom215/admitlens/internal/models"
)

type snapshot struct {
	list []models.Institution
	byID map[string]int
}

func newSnapshot(insts []models.Institution) *snapshot {
	list := make([]models.Institution, len(insts))
	for i := range insts {
		list[i] = insts[i].Clone()
	}
	sort.Slice(list, func(a, b int) bool { return list[a].ID < list[b].ID })

	byID := make(map[string]int, len(list))
	for i := range list {
		byID[list[i].ID] = i
	}
	return &snapshot{list: list, byID: byID}
}

// MemoryStore serves an immutable snapshot. Replace and Reload swap the
// whole snapshot so readers never observe a partial catalog.
type MemoryStore struct {
	snap atomic.Pointer[snapshot]
	path string
}

// NewMemoryStore validates insts and serves a copy of them.
func NewMemoryStore(insts []models.Institution) (*MemoryStore, error) {
	m := &MemoryStore{}
	if err := m.Replace(insts); err != nil {
		return nil, err
	}
	return m, nil
}

// NewFileStore loads path and remembers it for Reload.
func NewFileStore(path string) (*MemoryStore, error) {
	insts, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := NewMemoryStore(insts)
	if err != nil {
		return nil, err
	}
	m.path = path
	metrics.CatalogInstitutions.Set(float64(len(insts)))
	return m, nil
}

// Replace swaps in a new catalog.
func (m *MemoryStore) Replace(insts []models.Institution) error {
	if err := Check(insts); err != nil {
		return err
	}
	m.snap.Store(newSnapshot(insts))
	return nil
}

// Reload re-reads the file given to NewFileStore. On error the current
// snapshot keeps serving.
func (m *MemoryStore) Reload(_ context.Context) (int, error) {
	if m.path == "" {
		return 0, errors.New("catalog has no backing file")
	}
	insts, err := LoadFile(m.path)
	if err == nil {
		err = m.Replace(insts)
	}
	metrics.RecordCatalogReload(len(insts), err)
	if err != nil {
		return 0, fmt.Errorf("reload catalog: %w", err)
	}
	return len(insts), nil
}

// Len returns the number of institutions currently served.
func (m *MemoryStore) Len() int {
	return len(m.snap.Load().list)
}

func (m *MemoryStore) Query(ctx context.Context, f Filter) ([]models.Institution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	defer func() {
		metrics.CatalogQueryDuration.WithLabelValues("memory").Observe(time.Since(start).Seconds())
	}()

	snap := m.snap.Load()
	out := make([]models.Institution, 0, len(snap.list))
	for i := range snap.list {
		if f.Matches(&snap.list[i]) {
			out = append(out, snap.list[i].Clone())
		}
	}
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*models.Institution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := m.snap.Load()
	i, ok := snap.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	inst := snap.list[i].Clone()
	return &inst, nil
}

var (
	_ Store    = (*MemoryStore)(nil)
	_ Reloader = (*MemoryStore)(nil)
)
