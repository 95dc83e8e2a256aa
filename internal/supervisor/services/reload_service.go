// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tomtom215/admitlens/internal/catalog"
)

// CatalogReloadService re-reads the institution catalog on a cron schedule.
// A failed reload is logged and the store keeps serving its previous
// snapshot; the next tick tries again.
type CatalogReloadService struct {
	reloader catalog.Reloader
	schedule cron.Schedule
	spec     string
	timeout  time.Duration
	logger   zerolog.Logger
	name     string

	runs     atomic.Int64
	failures atomic.Int64
}

// NewCatalogReloadService parses spec (standard five-field cron or a
// descriptor such as "@hourly") and returns the service. A non-positive
// timeout selects one minute per reload.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCatalogReloadService(reloader catalog.Reloader, spec string, timeout time.Duration, logger zerolog.Logger) (*CatalogReloadService, error) {
	if reloader == nil {
		return nil, errors.New("catalog reload service requires a reloader")
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid reload schedule %q: %w", spec, err)
	}
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &CatalogReloadService{
		reloader: reloader,
		schedule: schedule,
		spec:     spec,
		timeout:  timeout,
		logger:   logger.With().Str("service", "catalog-reload").Logger(),
		name:     "catalog-reload",
	}, nil
}

// Serve implements suture.Service. Overlapping ticks are skipped while a
// reload is still running.
func (s *CatalogReloadService) Serve(ctx context.Context) error {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DiscardLogger),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	c.Schedule(s.schedule, cron.FuncJob(func() { s.reload(ctx) }))

	s.logger.Info().Str("schedule", s.spec).Msg("Catalog reload scheduled")
	c.Start()

	<-ctx.Done()

	// Stop returns a context that is done once running jobs finish.
	stopped := c.Stop()
	select {
	case <-stopped.Done():
	case <-time.After(s.timeout):
		s.logger.Warn().Msg("Catalog reload still running at shutdown")
	}
	return ctx.Err()
}

// reload runs one reload under the per-run timeout.
func (s *CatalogReloadService) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.runs.Add(1)
	start := time.Now()
	n, err := s.reloader.Reload(runCtx)
	if err != nil {
		s.failures.Add(1)
		s.logger.Error().Err(err).Msg("Catalog reload failed, keeping previous catalog")
		return
	}
	s.logger.Info().
		Int("institutions", n).
		Dur("duration", time.Since(start)).
		Msg("Catalog reloaded")
}

// Runs returns how many reloads have been attempted.
func (s *CatalogReloadService) Runs() int64 {
	return s.runs.Load()
}

// Failures returns how many reloads have failed.
func (s *CatalogReloadService) Failures() int64 {
	return s.failures.Load()
}

// String names the service in supervisor events.
func (s *CatalogReloadService) String() string {
	return s.name
}
