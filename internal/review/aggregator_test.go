// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package review

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/admitlens/internal/models"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestAggregator(t *testing.T) *Aggregator {
	t.Helper()
	a, err := NewAggregator(DefaultAggregatorConfig(), WithClock(func() time.Time { return fixedNow }))
	if err != nil {
		t.Fatalf("NewAggregator: %v", err)
	}
	return a
}

func post(id string, s models.Sentiment, age time.Duration, topics ...models.Topic) models.ClassifiedPost {
	if len(topics) == 0 {
		topics = []models.Topic{models.TopicGeneral}
	}
	return models.ClassifiedPost{
		CommunityPost: models.CommunityPost{ID: id, Source: "test", CreatedAt: fixedNow.Add(-age)},
		Sentiment:     s,
		Topics:        topics,
	}
}

const day = 24 * time.Hour

func TestAggregate_ZeroPosts(t *testing.T) {
	t.Parallel()

	s := newTestAggregator(t).Aggregate("iit-b", nil)
	if s.TotalReviews != 0 {
		t.Errorf("TotalReviews = %d, want 0", s.TotalReviews)
	}
	if s.AverageSentiment != 0 {
		t.Errorf("AverageSentiment = %f, want 0", s.AverageSentiment)
	}
	if s.RecentTrend != models.TrendStable {
		t.Errorf("RecentTrend = %s, want stable", s.RecentTrend)
	}
	if len(s.TopicRatings) != 0 {
		t.Errorf("TopicRatings = %v, want empty", s.TopicRatings)
	}
	if !s.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt = %v, want %v", s.GeneratedAt, fixedNow)
	}
}

func TestAggregate_DistributionSumsToTotal(t *testing.T) {
	t.Parallel()

	posts := []models.ClassifiedPost{
		post("1", models.SentimentPositive, day),
		post("2", models.SentimentNegative, day),
		post("3", models.SentimentNeutral, day),
		post("4", models.SentimentMixed, day),
		post("5", models.SentimentPositive, 400*day),
	}
	s := newTestAggregator(t).Aggregate("x", posts)

	want := models.SentimentDistribution{Positive: 2, Negative: 1, Neutral: 1, Mixed: 1}
	if s.SentimentDistribution != want {
		t.Errorf("distribution = %+v, want %+v", s.SentimentDistribution, want)
	}
	if s.SentimentDistribution.Total() != s.TotalReviews {
		t.Errorf("distribution total %d != TotalReviews %d", s.SentimentDistribution.Total(), s.TotalReviews)
	}
	if math.Abs(s.AverageSentiment-0.2) > 1e-9 {
		t.Errorf("AverageSentiment = %f, want 0.2", s.AverageSentiment)
	}
}

func TestAggregate_TopicRatings(t *testing.T) {
	t.Parallel()

	posts := []models.ClassifiedPost{
		post("1", models.SentimentPositive, day, models.TopicPlacements),
		post("2", models.SentimentNegative, day, models.TopicPlacements),
		post("3", models.SentimentPositive, day, models.TopicPlacements, models.TopicFaculty),
		post("4", models.SentimentMixed, day, models.TopicFees),
		post("5", models.SentimentNegative, day, models.TopicInfrastructure, models.TopicInfrastructure),
	}
	s := newTestAggregator(t).Aggregate("x", posts)

	tests := []struct {
		topic    models.Topic
		rating   float64
		mentions int
		label    models.Sentiment
	}{
		{models.TopicPlacements, 2.5 + 2.5/3, 3, models.SentimentPositive},
		{models.TopicFaculty, 5, 1, models.SentimentPositive},
		{models.TopicFees, 2.5, 1, models.SentimentNeutral},
		{models.TopicInfrastructure, 0, 1, models.SentimentNegative},
	}
	for _, tt := range tests {
		got, ok := s.TopicRatings[tt.topic]
		if !ok {
			t.Errorf("missing topic %s", tt.topic)
			continue
		}
		if math.Abs(got.AverageRating-tt.rating) > 1e-9 {
			t.Errorf("%s rating = %f, want %f", tt.topic, got.AverageRating, tt.rating)
		}
		if got.MentionCount != tt.mentions {
			t.Errorf("%s mentions = %d, want %d", tt.topic, got.MentionCount, tt.mentions)
		}
		if got.Sentiment != tt.label {
			t.Errorf("%s sentiment = %s, want %s", tt.topic, got.Sentiment, tt.label)
		}
	}
	if len(s.TopicRatings) != len(tests) {
		t.Errorf("len(TopicRatings) = %d, want %d", len(s.TopicRatings), len(tests))
	}
}

func TestAggregate_Trend(t *testing.T) {
	t.Parallel()

	repeat := func(n int, s models.Sentiment, age time.Duration) []models.ClassifiedPost {
		out := make([]models.ClassifiedPost, n)
		for i := range out {
			out[i] = post("p", s, age)
		}
		return out
	}

	tests := []struct {
		name  string
		posts []models.ClassifiedPost
		want  models.Trend
	}{
		{
			name:  "recent positive after negative history",
			posts: append(repeat(4, models.SentimentNegative, 400*day), repeat(2, models.SentimentPositive, 10*day)...),
			want:  models.TrendImproving,
		},
		{
			name:  "recent negative after positive history",
			posts: append(repeat(4, models.SentimentPositive, 400*day), repeat(2, models.SentimentNegative, 10*day)...),
			want:  models.TrendDeclining,
		},
		{
			name:  "consistent sentiment",
			posts: append(repeat(3, models.SentimentPositive, 400*day), repeat(3, models.SentimentPositive, 10*day)...),
			want:  models.TrendStable,
		},
		{
			name:  "no recent posts",
			posts: repeat(5, models.SentimentNegative, 365*day),
			want:  models.TrendStable,
		},
		{
			name:  "window boundary counts as recent",
			posts: append(repeat(4, models.SentimentNegative, 400*day), repeat(2, models.SentimentPositive, 180*day)...),
			want:  models.TrendImproving,
		},
	}

	a := newTestAggregator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := a.Aggregate("x", tt.posts).RecentTrend; got != tt.want {
				t.Errorf("trend = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	t.Parallel()

	posts := []models.ClassifiedPost{
		post("1", models.SentimentPositive, day, models.TopicPlacements),
		post("2", models.SentimentNegative, 300*day, models.TopicFaculty, models.TopicFees),
		post("3", models.SentimentMixed, 20*day, models.TopicCampusLife),
		post("4", models.SentimentNeutral, 900*day),
		post("5", models.SentimentPositive, 5*day, models.TopicPlacements, models.TopicLocation),
		post("6", models.SentimentNegative, 2*day, models.TopicAdministration),
	}

	a := newTestAggregator(t)
	want := a.Aggregate("x", posts)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]models.ClassifiedPost(nil), posts...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		if got := a.Aggregate("x", shuffled); !reflect.DeepEqual(got, want) {
			t.Fatalf("shuffle %d produced a different summary:\n got %+v\nwant %+v", i, got, want)
		}
	}
}

func TestAggregatorConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*AggregatorConfig)
		wantErr bool
	}{
		{"defaults", func(*AggregatorConfig) {}, false},
		{"zero window", func(c *AggregatorConfig) { c.RecentWindow = 0 }, true},
		{"negative trend", func(c *AggregatorConfig) { c.TrendThreshold = -0.1 }, true},
		{"topic above one", func(c *AggregatorConfig) { c.TopicThreshold = 1.5 }, true},
	}
	for _, tt := range tests {
		cfg := DefaultAggregatorConfig()
		tt.mutate(&cfg)
		if err := cfg.Validate(); (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}
