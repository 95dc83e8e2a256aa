// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

// Package catalog stores the institution reference data the engine scores.
//
// The catalog is read-only from the engine's point of view. Two backends
// are provided: MemoryStore, an immutable snapshot that can be swapped
// atomically when the source file is reloaded, and DuckDBStore, which keeps
// institutions and cutoffs in DuckDB tables.
package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/tomtom215/admitlens/internal/models"
)

// ErrNotFound is returned by Get for an unknown institution ID.
var ErrNotFound = errors.New("institution not found")

// Filter narrows a catalog query. Zero fields match everything.
type Filter struct {
	// Region matches Institution.Region case-insensitively.
	Region string
	// Type matches Institution.Type exactly.
	Type models.InstitutionType
}

// Matches reports whether inst passes the filter.
func (f Filter) Matches(inst *models.Institution) bool {
	if f.Region != "" && !strings.EqualFold(f.Region, inst.Region) {
		return false
	}
	if f.Type != "" && f.Type != inst.Type {
		return false
	}
	return true
}

// Store is a queryable institution catalog. Implementations are safe for
// concurrent use and return institutions ordered by ID. Callers own the
// returned values.
type Store interface {
	Query(ctx context.Context, f Filter) ([]models.Institution, error)
	Get(ctx context.Context, id string) (*models.Institution, error)
}

// Reloader is implemented by stores that can refresh from their source.
type Reloader interface {
	// Reload re-reads the source and returns the new institution count.
	Reload(ctx context.Context) (int, error)
}
