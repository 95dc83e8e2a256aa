// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

/*
Package models defines the data structures shared across admitlens.

Reference data:
  - Institution: catalog entry with cutoffs, rank, fees, placement and
    facilities. Owned by the catalog and copied out with Clone.

Request data:
  - CandidatePreferences: exam, score and preferences for one request.
    Never stored.

Review data:
  - CommunityPost and ClassifiedPost: ephemeral posts from the sources.
  - ReviewSummary: the per-institution digest with sentiment distribution,
    topic ratings and recent trend.

Output:
  - Recommendation: an institution with match score, admission chance,
    score breakdown, reasons, pros and cons, and optional reviews.
  - APIResponse: the JSON envelope returned by every API endpoint.

Values here carry no behaviour beyond small lookups (Cutoffs.Lookup,
Institution.OffersCourse, CandidatePreferences.PrimaryBranch); scoring and
aggregation live in their own packages.
*/
package models
