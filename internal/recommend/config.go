// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package recommend

import (
	"fmt"
	"time"

	"github.com/tomtom215/admitlens/internal/admission"
	"github.com/tomtom215/admitlens/internal/eligibility"
	"github.com/tomtom215/admitlens/internal/fetcher"
	"github.com/tomtom215/admitlens/internal/models"
	"github.com/tomtom215/admitlens/internal/review"
)

// CancelPolicy decides what Recommend returns when the review stage is
// cut short by cancellation or the review budget.
type CancelPolicy string

const (
	// CancelPartial returns the recommendations with whatever summaries
	// completed; Response.Meta.Partial is set.
	CancelPartial CancelPolicy = "partial"
	// CancelFail returns the context error and no recommendations.
	CancelFail CancelPolicy = "fail"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Policy holds the scoring and review thresholds.
	Policy PolicyConfig `koanf:"policy" json:"policy"`

	// Limits bounds result sizes.
	Limits LimitsConfig `koanf:"limits" json:"limits"`

	// Concurrency bounds the review stage.
	Concurrency ConcurrencyConfig `koanf:"concurrency" json:"concurrency"`

	// Fetch configures outbound source queries.
	Fetch fetcher.Config `koanf:"fetch" json:"fetch"`

	// OnCancel selects the cancellation policy. Default: partial.
	OnCancel CancelPolicy `koanf:"on_cancel" json:"on_cancel"`

	// ExamTypes lists the accepted exams. Empty accepts any exam name.
	ExamTypes []models.ExamType `koanf:"exam_types" json:"exam_types"`
}

// PolicyConfig holds the tunable policy constants.
type PolicyConfig struct {
	// EligibilityFloor is the fraction of a cutoff a score must reach.
	// Default: 0.8.
	EligibilityFloor float64 `koanf:"eligibility_floor" json:"eligibility_floor"`

	// AdmissionBands maps percent above cutoff to admission chance.
	AdmissionBands []admission.Band `koanf:"admission_bands" json:"admission_bands"`

	// FloorChance applies below the lowest band. Default: 5.
	FloorChance int `koanf:"floor_chance" json:"floor_chance"`

	// RecentWindow is how far back a post counts as recent. Default: 180 days.
	RecentWindow time.Duration `koanf:"recent_window" json:"recent_window"`

	// TrendThreshold is the recent-vs-overall sentiment gap that marks a
	// trend. Default: 0.2.
	TrendThreshold float64 `koanf:"trend_threshold" json:"trend_threshold"`

	// TopicSentimentThreshold labels a topic positive or negative.
	// Default: 0.2.
	TopicSentimentThreshold float64 `koanf:"topic_sentiment_threshold" json:"topic_sentiment_threshold"`
}

// LimitsConfig bounds result sizes.
type LimitsConfig struct {
	// DefaultResults is used when the caller asks for 0 results. Default: 10.
	DefaultResults int `koanf:"default_results" json:"default_results"`

	// MaxResults caps the caller's request. Default: 50.
	MaxResults int `koanf:"max_results" json:"max_results"`
}

// ConcurrencyConfig bounds the review stage.
type ConcurrencyConfig struct {
	// MaxParallel is the number of institutions reviewed at once. Default: 8.
	MaxParallel int `koanf:"max_parallel" json:"max_parallel"`

	// ReviewBudget caps the whole review stage; zero means only the
	// caller's deadline applies. Default: 15s.
	ReviewBudget time.Duration `koanf:"review_budget" json:"review_budget"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	agg := review.DefaultAggregatorConfig()
	return &Config{
		Policy: PolicyConfig{
			EligibilityFloor:        eligibility.DefaultFloor,
			AdmissionBands:          append([]admission.Band(nil), admission.DefaultBands...),
			FloorChance:             admission.DefaultFloorChance,
			RecentWindow:            agg.RecentWindow,
			TrendThreshold:          agg.TrendThreshold,
			TopicSentimentThreshold: agg.TopicThreshold,
		},
		Limits: LimitsConfig{
			DefaultResults: 10,
			MaxResults:     50,
		},
		Concurrency: ConcurrencyConfig{
			MaxParallel:  8,
			ReviewBudget: 15 * time.Second,
		},
		Fetch:     fetcher.DefaultConfig(),
		OnCancel:  CancelPartial,
		ExamTypes: []models.ExamType{"JEE_MAIN", "JEE_ADVANCED", "MHT_CET", "KCET", "COMEDK"},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Policy.EligibilityFloor <= 0 || c.Policy.EligibilityFloor > 1 {
		return fmt.Errorf("policy.eligibility_floor must be in (0, 1], got %f", c.Policy.EligibilityFloor)
	}
	if _, err := admission.NewEstimator(c.Policy.AdmissionBands, c.Policy.FloorChance); err != nil {
		return fmt.Errorf("policy.admission_bands: %w", err)
	}
	if err := c.AggregatorConfig().Validate(); err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	if c.Limits.DefaultResults < 1 {
		return fmt.Errorf("limits.default_results must be positive, got %d", c.Limits.DefaultResults)
	}
	if c.Limits.MaxResults < c.Limits.DefaultResults {
		return fmt.Errorf("limits.max_results must be >= limits.default_results, got %d < %d",
			c.Limits.MaxResults, c.Limits.DefaultResults)
	}

	if c.Concurrency.MaxParallel < 1 || c.Concurrency.MaxParallel > 64 {
		return fmt.Errorf("concurrency.max_parallel must be between 1 and 64, got %d", c.Concurrency.MaxParallel)
	}
	if c.Concurrency.ReviewBudget < 0 {
		return fmt.Errorf("concurrency.review_budget must be non-negative, got %v", c.Concurrency.ReviewBudget)
	}

	if err := c.Fetch.Validate(); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	switch c.OnCancel {
	case CancelPartial, CancelFail:
	default:
		return fmt.Errorf("on_cancel must be %q or %q, got %q", CancelPartial, CancelFail, c.OnCancel)
	}
	return nil
}

// AggregatorConfig extracts the review aggregator settings.
func (c *Config) AggregatorConfig() review.AggregatorConfig {
	return review.AggregatorConfig{
		RecentWindow:   c.Policy.RecentWindow,
		TrendThreshold: c.Policy.TrendThreshold,
		TopicThreshold: c.Policy.TopicSentimentThreshold,
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Policy.AdmissionBands = append([]admission.Band(nil), c.Policy.AdmissionBands...)
	out.ExamTypes = append([]models.ExamType(nil), c.ExamTypes...)
	return &out
}
