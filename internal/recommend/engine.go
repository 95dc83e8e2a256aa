// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/admitlens/internal/admission"
	"github.com/tomtom215/admitlens/internal/catalog"
	"github.com/tomtom215/admitlens/internal/eligibility"
	"github.com/tomtom215/admitlens/internal/logging"
	"github.com/tomtom215/admitlens/internal/metrics"
	"github.com/tomtom215/admitlens/internal/models"
	"github.com/tomtom215/admitlens/internal/ranking"
	"github.com/tomtom215/admitlens/internal/review"
	"github.com/tomtom215/admitlens/internal/validation"
)

// Engine runs the eligibility, admission, review and ranking stages for one
// request. It holds no per-request state and is safe for concurrent use.
type Engine struct {
	config    *Config
	logger    zerolog.Logger
	catalog   catalog.Store
	reviews   review.Provider
	scorer    *eligibility.Scorer
	estimator *admission.Estimator
	ranker    *ranking.Ranker
	now       func() time.Time
}

// NewEngine creates an engine. reviews may be nil, in which case
// recommendations carry no review summaries.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, store catalog.Store, reviews review.Provider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if store == nil {
		return nil, errors.New("engine requires a catalog store")
	}

	scorer, err := eligibility.NewScorer(cfg.Policy.EligibilityFloor)
	if err != nil {
		return nil, err
	}
	estimator, err := admission.NewEstimator(cfg.Policy.AdmissionBands, cfg.Policy.FloorChance)
	if err != nil {
		return nil, err
	}

	return &Engine{
		config:    cfg.Clone(),
		logger:    logger.With().Str("component", "recommend").Logger(),
		catalog:   store,
		reviews:   reviews,
		scorer:    scorer,
		estimator: estimator,
		ranker:    ranking.New(),
		now:       time.Now,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Recommend produces the ranked recommendations for one candidate.
//
// Invalid preferences yield an error matching ErrValidation. A catalog
// failure yields ErrCatalogUnavailable. When nothing is eligible the
// response is empty with Reason set and a nil error.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := e.now()

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
		ctx = logging.ContextWithRequestID(ctx, requestID)
	}
	logger := e.logger.With().Str("request_id", requestID).Logger()

	prefs := req.Preferences
	limit, err := e.resultLimit(req.MaxResults)
	if err == nil {
		if verr := validation.ValidatePreferences(&prefs, e.config.ExamTypes); verr != nil {
			err = fmt.Errorf("%w: %w", ErrValidation, verr)
		}
	}
	if err != nil {
		logger.Debug().Err(err).Msg("Rejected recommendation request")
		metrics.RecordRecommendation("invalid", 0, e.now().Sub(start))
		return nil, err
	}

	insts, err := e.catalog.Query(ctx, catalog.Filter{})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			metrics.RecordRecommendation("canceled", 0, e.now().Sub(start))
			return nil, ctxErr
		}
		logger.Error().Err(err).Msg("Catalog query failed")
		metrics.RecordRecommendation("catalog_unavailable", 0, e.now().Sub(start))
		return nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	scored := e.scorer.FilterAndScore(insts, &prefs)
	eligible, chances := e.estimate(scored, &prefs)

	resp := &Response{
		Recommendations: []models.Recommendation{},
		Meta: ResponseMetadata{
			RequestID:       requestID,
			TotalCandidates: len(eligible),
		},
	}

	if len(eligible) == 0 {
		resp.Reason = NoEligibleReason(e.scorer.Floor())
		resp.Meta.DurationMS = e.now().Sub(start).Milliseconds()
		logger.Info().Int("catalog", len(insts)).Msg("No eligible institutions")
		metrics.RecordRecommendation("no_eligible", 0, e.now().Sub(start))
		return resp, nil
	}

	// Ordering never depends on reviews, so only the survivors of
	// truncation are reviewed.
	ranking.Sort(eligible, chances)
	if len(eligible) > limit {
		eligible = eligible[:limit]
	}

	summaries, partial, err := e.collectReviews(ctx, eligible, logger)
	if err != nil {
		metrics.RecordRecommendation("canceled", len(eligible), e.now().Sub(start))
		return nil, err
	}

	resp.Recommendations = e.ranker.Rank(eligible, chances, summaries)
	resp.Meta.Partial = partial
	resp.Meta.DurationMS = e.now().Sub(start).Milliseconds()

	outcome := "ok"
	if partial {
		outcome = "partial"
	}
	metrics.RecordRecommendation(outcome, resp.Meta.TotalCandidates, e.now().Sub(start))

	logger.Info().
		Str("exam", string(prefs.ExamType)).
		Int("catalog", len(insts)).
		Int("eligible", resp.Meta.TotalCandidates).
		Int("returned", len(resp.Recommendations)).
		Bool("partial", partial).
		Int64("duration_ms", resp.Meta.DurationMS).
		Msg("Recommendations ready")

	return resp, nil
}

func (e *Engine) resultLimit(requested int) (int, error) {
	switch {
	case requested < 0:
		return 0, fmt.Errorf("%w: %w", ErrValidation,
			validation.NewFieldError("max_results", "gte", requested, "max_results must be greater than or equal to 0"))
	case requested == 0:
		return e.config.Limits.DefaultResults, nil
	case requested > e.config.Limits.MaxResults:
		return e.config.Limits.MaxResults, nil
	default:
		return requested, nil
	}
}

// estimate keeps the institutions with a primary-branch cutoff and returns
// their admission chances.
func (e *Engine) estimate(scored []eligibility.Scored, prefs *models.CandidatePreferences) ([]eligibility.Scored, map[string]int) {
	chances := make(map[string]int, len(scored))
	kept := scored[:0]
	for _, s := range scored {
		chance, err := e.estimator.ForInstitution(&s.Institution, prefs)
		if err != nil {
			continue
		}
		chances[s.Institution.ID] = chance
		kept = append(kept, s)
	}
	return kept, chances
}

// collectReviews runs the review provider for each institution on a bounded
// pool. A provider error other than cancellation leaves an empty summary.
func (e *Engine) collectReviews(ctx context.Context, top []eligibility.Scored, logger zerolog.Logger) (map[string]*models.ReviewSummary, bool, error) {
	summaries := make(map[string]*models.ReviewSummary, len(top))
	if e.reviews == nil {
		return summaries, false, nil
	}

	reviewCtx := ctx
	if budget := e.config.Concurrency.ReviewBudget; budget > 0 {
		var cancel context.CancelFunc
		reviewCtx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	results := make([]*models.ReviewSummary, len(top))
	var g errgroup.Group
	g.SetLimit(e.config.Concurrency.MaxParallel)

	for i := range top {
		if reviewCtx.Err() != nil {
			break
		}
		inst := &top[i].Institution
		g.Go(func() error {
			if reviewCtx.Err() != nil {
				return nil
			}
			summary, err := e.reviews.Summary(reviewCtx, inst)
			switch {
			case err == nil:
				results[i] = summary
			case reviewCtx.Err() != nil:
				// Cut short; left nil.
			default:
				logger.Warn().Err(err).Str("institution", inst.ID).Msg("Review summary failed, continuing without reviews")
				results[i] = models.EmptySummary(inst.ID, e.now())
			}
			return nil
		})
	}
	_ = g.Wait()

	partial := false
	for i := range top {
		if results[i] == nil {
			partial = true
			continue
		}
		summaries[top[i].Institution.ID] = results[i]
	}

	if !partial {
		return summaries, false, nil
	}

	cause := reviewCtx.Err()
	if cause == nil {
		cause = context.Canceled
	}
	if e.config.OnCancel == CancelFail {
		logger.Warn().Err(cause).Msg("Review stage cut short, failing request")
		return nil, false, fmt.Errorf("review stage: %w", cause)
	}
	logger.Warn().
		Err(cause).
		Int("reviewed", len(summaries)).
		Int("requested", len(top)).
		Msg("Review stage cut short, returning partial results")
	return summaries, true, nil
}
