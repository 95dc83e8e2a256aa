// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/admitlens/internal/api"
	"github.com/tomtom215/admitlens/internal/classify"
	"github.com/tomtom215/admitlens/internal/config"
	"github.com/tomtom215/admitlens/internal/logging"
	"github.com/tomtom215/admitlens/internal/recommend"
	"github.com/tomtom215/admitlens/internal/supervisor"
	"github.com/tomtom215/admitlens/internal/supervisor/services"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

//nolint:gocyclo // sequential startup wiring
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(cfg.Logging)
	logger := logging.Logger()
	logger.Info().Str("version", version).Msg("Starting admitlens")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closer, err := buildCatalog(ctx, &cfg.Catalog)
	if err != nil {
		return err
	}
	if closer != nil {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Error().Err(err).Msg("Error closing catalog")
			}
		}()
	}
	logger.Info().Str("driver", cfg.Catalog.Driver).Str("path", cfg.Catalog.Path).Msg("Catalog ready")

	classifier := classify.NewDefault()

	reviews, err := buildReviews(ctx, cfg, classifier, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := reviews.Close(); err != nil {
			logger.Error().Err(err).Msg("Error closing review cache")
		}
	}()

	engine, err := recommend.NewEngine(&cfg.Engine, store, reviews.provider, logger)
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}

	handler, err := api.NewHandler(api.Dependencies{
		Engine:         engine,
		Catalog:        store,
		Reviews:        reviews.provider,
		Classifier:     classifier,
		RequestTimeout: cfg.Server.RequestTimeout,
		Version:        version,
	})
	if err != nil {
		return err
	}

	mwCfg := api.DefaultChiMiddlewareConfig()
	mwCfg.CORSAllowedOrigins = cfg.Server.CORSOrigins
	mwCfg.RateLimitRequests = cfg.Server.RateLimitReqs
	mwCfg.RateLimitWindow = cfg.Server.RateLimitWindow
	mwCfg.RateLimitDisabled = cfg.Server.RateLimitDisabled
	if cfg.Server.RateLimitDisabled {
		logger.Warn().Msg("Rate limiting is disabled")
	}

	router := api.NewRouter(handler, api.NewChiMiddleware(mwCfg), logger)
	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))

	if cfg.Catalog.ReloadSchedule != "" {
		reload, err := services.NewCatalogReloadService(store, cfg.Catalog.ReloadSchedule, 0, logger)
		if err != nil {
			return err
		}
		tree.AddJobService(reload)
	}

	logger.Info().Str("addr", server.Addr).Msg("Listening")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}

	if report, rerr := tree.UnstoppedServiceReport(); rerr == nil && len(report) > 0 {
		logger.Warn().Int("count", len(report)).Msg("Services did not stop before the shutdown timeout")
	}
	logger.Info().Msg("Shutdown complete")
	return nil
}
