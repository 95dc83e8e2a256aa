// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

// Package services adapts long-running components to suture.Service.
//
// HTTPServerService turns http.Server's ListenAndServe/Shutdown pair into a
// context-driven Serve. CatalogReloadService runs catalog.Reloader on a
// robfig/cron schedule. Both return ctx.Err() on a clean stop so the
// supervisor does not count shutdown as a failure.
package services
