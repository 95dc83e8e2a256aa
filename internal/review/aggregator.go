// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package review

import (
	"fmt"
	"time"

	"github.com/tomtom215/admitlens/internal/models"
)

// AggregatorConfig holds the tunable thresholds of the aggregator.
type AggregatorConfig struct {
	// RecentWindow is how far back a post counts as recent.
	// Default: 180 days.
	RecentWindow time.Duration `json:"recent_window"`

	// TrendThreshold is the margin recent sentiment must exceed the overall
	// sentiment by to be reported as improving or declining.
	// Default: 0.2.
	TrendThreshold float64 `json:"trend_threshold"`

	// TopicThreshold is the sentiment score above which (or below the
	// negative of which) a topic is labeled positive (negative).
	// Default: 0.2.
	TopicThreshold float64 `json:"topic_threshold"`
}

// DefaultAggregatorConfig returns the default thresholds.
func DefaultAggregatorConfig() AggregatorConfig {
	return AggregatorConfig{
		RecentWindow:   180 * 24 * time.Hour,
		TrendThreshold: 0.2,
		TopicThreshold: 0.2,
	}
}

// Validate checks the thresholds.
func (c AggregatorConfig) Validate() error {
	if c.RecentWindow <= 0 {
		return fmt.Errorf("recent_window must be positive, got %s", c.RecentWindow)
	}
	if c.TrendThreshold < 0 || c.TrendThreshold > 2 {
		return fmt.Errorf("trend_threshold must be in [0, 2], got %f", c.TrendThreshold)
	}
	if c.TopicThreshold < 0 || c.TopicThreshold > 1 {
		return fmt.Errorf("topic_threshold must be in [0, 1], got %f", c.TopicThreshold)
	}
	return nil
}

// Aggregator turns classified posts into a ReviewSummary. It is pure apart
// from reading its clock, and the result does not depend on post order.
type Aggregator struct {
	cfg AggregatorConfig
	now func() time.Time
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithClock overrides the time source used for the recent window and
// GeneratedAt.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) {
		a.now = now
	}
}

// NewAggregator creates an aggregator.
func NewAggregator(cfg AggregatorConfig, opts ...AggregatorOption) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid aggregator config: %w", err)
	}
	a := &Aggregator{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

type tally struct {
	mentions int
	positive int
	negative int
}

func (t *tally) add(s models.Sentiment) {
	t.mentions++
	switch s {
	case models.SentimentPositive:
		t.positive++
	case models.SentimentNegative:
		t.negative++
	}
}

// score returns (positive - negative) / mentions, or 0 with no mentions.
func (t *tally) score() float64 {
	if t.mentions == 0 {
		return 0
	}
	return float64(t.positive-t.negative) / float64(t.mentions)
}

// Aggregate builds the summary for one institution.
func (a *Aggregator) Aggregate(institutionID string, posts []models.ClassifiedPost) *models.ReviewSummary {
	now := a.now()
	summary := models.EmptySummary(institutionID, now)
	if len(posts) == 0 {
		return summary
	}

	cutoff := now.Add(-a.cfg.RecentWindow)
	var overall, recent tally
	topics := make(map[models.Topic]*tally)

	for i := range posts {
		p := &posts[i]

		switch p.Sentiment {
		case models.SentimentPositive:
			summary.SentimentDistribution.Positive++
		case models.SentimentNegative:
			summary.SentimentDistribution.Negative++
		case models.SentimentMixed:
			summary.SentimentDistribution.Mixed++
		default:
			summary.SentimentDistribution.Neutral++
		}

		overall.add(p.Sentiment)
		if !p.CreatedAt.Before(cutoff) {
			recent.add(p.Sentiment)
		}

		for _, topic := range uniqueTopics(p.Topics) {
			t, ok := topics[topic]
			if !ok {
				t = &tally{}
				topics[topic] = t
			}
			t.add(p.Sentiment)
		}
	}

	summary.TotalReviews = len(posts)
	summary.AverageSentiment = overall.score()
	summary.RecentSentiment = recent.score()
	summary.RecentReviews = recent.mentions
	summary.RecentTrend = a.trend(overall.score(), recent)

	for topic, t := range topics {
		s := t.score()
		summary.TopicRatings[topic] = models.TopicRating{
			AverageRating: clamp(2.5+s*2.5, 0, 5),
			MentionCount:  t.mentions,
			Sentiment:     a.label(s),
		}
	}

	return summary
}

func (a *Aggregator) trend(average float64, recent tally) models.Trend {
	if recent.mentions == 0 {
		return models.TrendStable
	}
	r := recent.score()
	switch {
	case r > average+a.cfg.TrendThreshold:
		return models.TrendImproving
	case r < average-a.cfg.TrendThreshold:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

func (a *Aggregator) label(score float64) models.Sentiment {
	switch {
	case score > a.cfg.TopicThreshold:
		return models.SentimentPositive
	case score < -a.cfg.TopicThreshold:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// uniqueTopics drops repeated tags so a post counts once per topic.
func uniqueTopics(topics []models.Topic) []models.Topic {
	if len(topics) < 2 {
		return topics
	}
	seen := make(map[models.Topic]struct{}, len(topics))
	out := make([]models.Topic, 0, len(topics))
	for _, t := range topics {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
