// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package review

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tomtom215/admitlens/internal/classify"
	"github.com/tomtom215/admitlens/internal/models"
)

// Provider produces the review summary for an institution.
// An error is returned only when ctx is done.
type Provider interface {
	Summary(ctx context.Context, inst *models.Institution) (*models.ReviewSummary, error)
}

// PostFetcher returns the community posts mentioning a name. Source
// failures are absorbed by the fetcher.
type PostFetcher interface {
	Fetch(ctx context.Context, name string) []models.CommunityPost
}

// Pipeline fetches, classifies and aggregates posts for one institution.
type Pipeline struct {
	fetcher    PostFetcher
	classifier classify.TextClassifier
	aggregator *Aggregator
	logger     zerolog.Logger
}

// NewPipeline wires the three review stages together.
func NewPipeline(f PostFetcher, c classify.TextClassifier, a *Aggregator, logger zerolog.Logger) (*Pipeline, error) {
	if f == nil || c == nil || a == nil {
		return nil, errors.New("review pipeline requires a fetcher, classifier and aggregator")
	}
	return &Pipeline{
		fetcher:    f,
		classifier: c,
		aggregator: a,
		logger:     logger.With().Str("component", "review").Logger(),
	}, nil
}

// Summary implements Provider.
func (p *Pipeline) Summary(ctx context.Context, inst *models.Institution) (*models.ReviewSummary, error) {
	posts := p.fetcher.Fetch(ctx, inst.Name)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	classified := classify.ClassifyPosts(p.classifier, posts)
	summary := p.aggregator.Aggregate(inst.ID, classified)

	p.logger.Debug().
		Str("institution", inst.ID).
		Int("posts", summary.TotalReviews).
		Str("trend", string(summary.RecentTrend)).
		Msg("Review summary built")

	return summary, nil
}
