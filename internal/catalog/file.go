// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package catalog

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/tomtom215/admitlens/internal/models"
)

// document is the on-disk layout of a catalog file.
type document struct {
	Institutions []models.Institution `json:"institutions" yaml:"institutions"`
}

// LoadFile reads a catalog from a .yaml, .yml or .json file.
func LoadFile(path string) ([]models.Institution, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var doc document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &doc)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&doc)
	default:
		return nil, fmt.Errorf("catalog %s: unsupported extension %q", path, filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}

	if err := Check(doc.Institutions); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return doc.Institutions, nil
}

// Check validates reference data before it is served.
func Check(insts []models.Institution) error {
	seen := make(map[string]struct{}, len(insts))
	for i := range insts {
		inst := &insts[i]
		if inst.ID == "" {
			return fmt.Errorf("institution %d has no id", i)
		}
		if _, dup := seen[inst.ID]; dup {
			return fmt.Errorf("duplicate institution id %q", inst.ID)
		}
		seen[inst.ID] = struct{}{}

		if inst.Name == "" {
			return fmt.Errorf("institution %q has no name", inst.ID)
		}
		if !inst.Type.Valid() {
			return fmt.Errorf("institution %q has invalid type %q", inst.ID, inst.Type)
		}
		if inst.Rank != nil && *inst.Rank <= 0 {
			return fmt.Errorf("institution %q has non-positive rank %d", inst.ID, *inst.Rank)
		}
		if p := inst.Placement; p != nil && (p.PlacementPercentage < 0 || p.PlacementPercentage > 100) {
			return fmt.Errorf("institution %q placement percentage %.1f out of range", inst.ID, p.PlacementPercentage)
		}
	}
	return nil
}
