// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

// Package recommend is the engine entry point: it turns a candidate's exam
// score and preferences into a ranked, explained list of institutions.
//
// # Pipeline
//
// One call to Engine.Recommend runs, in order:
//
//  1. validation of the preferences (ErrValidation on failure)
//  2. a catalog query (ErrCatalogUnavailable on failure)
//  3. eligibility filtering and match scoring (eligibility package)
//  4. admission estimates for the primary branch (admission package)
//  5. ordering and truncation to the requested size (ranking package)
//  6. review summaries for the survivors, on a bounded worker pool
//  7. reasons, pros and cons (ranking package)
//
// Steps 3 to 5 and 7 are pure. Step 6 talks to external post sources and
// never fails the request on its own: a source outage yields fewer posts and
// an empty summary at worst.
//
// # Cancellation
//
// The caller's context reaches every in-flight source query. The review
// stage may also be bounded by Concurrency.ReviewBudget. When either cuts
// the stage short, OnCancel decides the outcome: CancelPartial returns the
// recommendations with the summaries that finished and sets Meta.Partial;
// CancelFail returns the context error.
//
// # Example
//
//	engine, err := recommend.NewEngine(cfg, store, provider, logger)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Preferences: prefs,
//	    MaxResults:  10,
//	})
package recommend
