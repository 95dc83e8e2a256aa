// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package api

import (
	"errors"
	"time"

	"github.com/tomtom215/admitlens/internal/catalog"
	"github.com/tomtom215/admitlens/internal/classify"
	"github.com/tomtom215/admitlens/internal/recommend"
	"github.com/tomtom215/admitlens/internal/review"
)

// Analyzer explains a classification decision.
type Analyzer interface {
	Analyze(text string) classify.Analysis
}

// Dependencies are the collaborators the handlers call.
type Dependencies struct {
	Engine     *recommend.Engine
	Catalog    catalog.Store
	Reviews    review.Provider // optional
	Classifier Analyzer

	// RequestTimeout bounds each API call. Zero leaves only the client's
	// own deadline.
	RequestTimeout time.Duration

	Version string
}

// Handler serves the API endpoints.
type Handler struct {
	engine         *recommend.Engine
	catalog        catalog.Store
	reviews        review.Provider
	classifier     Analyzer
	requestTimeout time.Duration
	version        string
	startTime      time.Time
}

// NewHandler validates deps and returns a Handler.
func NewHandler(deps Dependencies) (*Handler, error) {
	if deps.Engine == nil {
		return nil, errors.New("api handler requires an engine")
	}
	if deps.Catalog == nil {
		return nil, errors.New("api handler requires a catalog")
	}
	if deps.Classifier == nil {
		return nil, errors.New("api handler requires a classifier")
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}
	return &Handler{
		engine:         deps.Engine,
		catalog:        deps.Catalog,
		reviews:        deps.Reviews,
		classifier:     deps.Classifier,
		requestTimeout: deps.RequestTimeout,
		version:        version,
		startTime:      time.Now(),
	}, nil
}
