// Admitlens - College Recommendation and Review Intelligence
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/admitlens

/*
Package supervisor runs the server's long-lived services under a suture v4
tree.

# Layout

	RootSupervisor ("admitlens")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── JobsSupervisor ("jobs-layer")
	    └── CatalogReloadService (when catalog.reload_schedule is set)

Crashed services restart with suture's backoff. Each layer counts failures
on its own, so a reload job stuck in backoff does not affect the API.

# Logging

Supervisor events go through sutureslog. The server passes a *slog.Logger
built with logging.NewSlogLogger, so supervisor events land in the same
zerolog stream as everything else.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(logger), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddJobService(reloadSvc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Service wrappers live in the services subpackage.
*/
package supervisor
