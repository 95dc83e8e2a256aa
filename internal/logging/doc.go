// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

/*
Package logging holds the process-wide zerolog logger.

Components that need their own sink take a zerolog.Logger by value
(see fetcher.New or review.NewPipeline); everything else goes through
the package helpers:

	logging.Init(logging.Config{Level: "debug", Format: "console"})
	logging.Info().Str("addr", addr).Msg("HTTP server listening")

Request-scoped fields travel on the context:

	ctx = logging.ContextWithRequestID(ctx, logging.GenerateRequestID())
	logging.Ctx(ctx).Warn().Msg("Source unavailable")

SlogHandler bridges log/slog for libraries that only speak slog, such as
the suture supervisor's event hook.
*/
package logging
