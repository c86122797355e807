// Stackwise - Poker Training Analytics and Personalized Coaching
// Copyright 2026 Stackwise Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stackwise/stackwise

// Command server runs the Stackwise coaching service: it ingests
// training session telemetry, maintains per-user skill profiles, and
// serves ranked recommendations and milestone-sequenced training plans
// over HTTP.
//
// Configuration comes from a YAML file (STACKWISE_CONFIG or the default
// search paths) layered under STACKWISE_* environment variables; see
// internal/config for the full list.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/stackwise/stackwise/internal/api"
	"github.com/stackwise/stackwise/internal/cache"
	"github.com/stackwise/stackwise/internal/config"
	"github.com/stackwise/stackwise/internal/database"
	"github.com/stackwise/stackwise/internal/events"
	"github.com/stackwise/stackwise/internal/logging"
	"github.com/stackwise/stackwise/internal/metrics"
	"github.com/stackwise/stackwise/internal/profiler"
	"github.com/stackwise/stackwise/internal/recommend"
	"github.com/stackwise/stackwise/internal/supervisor"
	"github.com/stackwise/stackwise/internal/supervisor/services"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("db_path", cfg.Database.Path).
		Bool("nats_enabled", cfg.NATS.Enabled).
		Msg("Starting Stackwise")
	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.NATS.Enabled {
		natsPub, err := events.NewNATSPublisher(&cfg.NATS, logging.Logger())
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to create NATS publisher")
		}
		publisher = natsPub
		logging.Info().Str("url", cfg.NATS.URL).Msg("NATS publisher connected")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing publisher")
		}
	}()

	analyzer, err := profiler.NewAnalyzer(nil, nil, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create analyzer")
	}
	engine, err := recommend.NewEngine(nil, nil, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	profileCache := cache.New("profile", cfg.Cache.ProfileTTL)
	handler := api.NewHandler(db, profileCache, analyzer, engine, publisher, cfg)
	router := api.NewRouter(handler, &cfg.API)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	tree := supervisor.NewTree(slogger, supervisor.DefaultTreeConfig())
	tree.AddTelemetryService(services.NewUptimeService(15 * time.Second))
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
