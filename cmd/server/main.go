// FamTrack - Real-Time Family Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/famtrack

// Package main is the entry point for the FamTrack server application.
//
// FamTrack is a self-hosted real-time family location tracker. Family
// members stream position pings over WebSocket sessions; the server
// persists every ping to DuckDB, fans positions out to all connected
// sessions, raises speed alerts back to the speeding device, and serves
// a REST API for history, latest positions, and safe zone management.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize DuckDB for location events, users, and safe zones
//  3. Ingestion Pipeline: Validate pings, stamp server time, evaluate speed
//  4. WebSocket Hub: Fan out location updates to connected sessions
//  5. Authentication: JWT session tokens with bcrypt password hashing
//  6. HTTP Server: REST API with Chi routing and Prometheus metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (FAMTRACK_ prefix)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// Required settings:
//   - FAMTRACK_SECURITY_JWT_SECRET: 32+ character secret for token signing
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes all WebSocket sessions and the database connection
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/famtrack/internal/api"
	"github.com/tomtom215/famtrack/internal/auth"
	"github.com/tomtom215/famtrack/internal/config"
	"github.com/tomtom215/famtrack/internal/database"
	"github.com/tomtom215/famtrack/internal/ingest"
	"github.com/tomtom215/famtrack/internal/logging"
	"github.com/tomtom215/famtrack/internal/supervisor"
	ws "github.com/tomtom215/famtrack/internal/websocket"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().Msg("Starting FamTrack with supervisor tree")
	logging.Info().
		Str("db_path", cfg.Database.Path).
		Float64("speed_threshold_kmh", cfg.Tracking.SpeedThresholdKmh).
		Int("history_days", cfg.Tracking.HistoryDays).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create structured logger for supervisor using our slog adapter
	// This bridges zerolog to slog for sutureslog compatibility
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	// Ingestion pipeline validates pings and persists them; the hub owns
	// fan-out, so the pipeline is the hub's location handler.
	pipeline := ingest.NewPipeline(db, &cfg.Tracking)
	hub := ws.NewHub(pipeline, &cfg.Tracking)

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	hasher := auth.NewPasswordHasher(&cfg.Security)
	middleware := auth.NewMiddleware(jwtManager)

	if len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS is configured with wildcard origin; set specific origins in production")
	}

	handlers := api.NewHandlers(db, hub, jwtManager, hasher, cfg)
	router := api.NewRouter(handlers, middleware, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Messaging layer services
	tree.AddMessagingService(supervisor.NewWebSocketHubService(hub))
	logging.Info().Msg("WebSocket hub added to supervisor tree")

	// API layer services
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	// Wait for supervisor to finish (either from signal or error)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Wait for the error channel to close (supervisor finished)
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	// Report any services that failed to stop within timeout
	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
