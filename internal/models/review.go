// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package models

import "time"

// Trend compares recent sentiment against all-time sentiment.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// SentimentDistribution counts posts per sentiment label.
// The four counts always sum to the summary's TotalReviews.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
	Mixed    int `json:"mixed"`
}

// Total returns the sum of all counts.
func (d SentimentDistribution) Total() int {
	return d.Positive + d.Neutral + d.Negative + d.Mixed
}

// TopicRating is the aggregated opinion about one topic bucket.
type TopicRating struct {
	// AverageRating is on a 0-5 scale; 2.5 is neutral.
	AverageRating float64 `json:"average_rating"`

	// MentionCount is the number of posts tagged with the topic.
	MentionCount int `json:"mention_count"`

	// Sentiment is the overall label for the topic.
	Sentiment Sentiment `json:"sentiment"`
}

// ReviewSummary is the per-institution digest of classified posts.
type ReviewSummary struct {
	InstitutionID         string                `json:"institution_id"`
	TotalReviews          int                   `json:"total_reviews"`
	SentimentDistribution SentimentDistribution `json:"sentiment_distribution"`
	TopicRatings          map[Topic]TopicRating `json:"topic_ratings"`

	// AverageSentiment is (positive - negative) / total over all posts, in [-1, 1].
	AverageSentiment float64 `json:"average_sentiment"`

	// RecentSentiment is AverageSentiment restricted to the recent window.
	RecentSentiment float64 `json:"recent_sentiment"`

	// RecentReviews is the number of posts inside the recent window.
	RecentReviews int `json:"recent_reviews"`

	RecentTrend Trend     `json:"recent_trend"`
	GeneratedAt time.Time `json:"generated_at"`
}

// EmptySummary returns the summary for an institution with no posts.
func EmptySummary(institutionID string, now time.Time) *ReviewSummary {
	return &ReviewSummary{
		InstitutionID: institutionID,
		TopicRatings:  map[Topic]TopicRating{},
		RecentTrend:   TrendStable,
		GeneratedAt:   now,
	}
}
