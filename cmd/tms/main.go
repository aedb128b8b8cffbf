// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command tms runs the translation management service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/tms-go/internal/cache"
	"github.com/olegiv/tms-go/internal/config"
	"github.com/olegiv/tms-go/internal/handler/api"
	"github.com/olegiv/tms-go/internal/logging"
	"github.com/olegiv/tms-go/internal/middleware"
	"github.com/olegiv/tms-go/internal/preference"
	"github.com/olegiv/tms-go/internal/scheduler"
	"github.com/olegiv/tms-go/internal/store"
	"github.com/olegiv/tms-go/internal/translation"
)

// Build-time injected version information.
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "TMS - Translation Management Service\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TMS_DB_PATH            SQLite database path (default: ./data/tms.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TMS_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TMS_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TMS_OPENAI_API_KEY     Translation provider API key (empty disables generation)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TMS_OPENAI_MODEL       Provider model name (default: gpt-4o-mini)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TMS_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  TMS_MONITOR_SCHEDULE   Completeness assessment cron (default: 0 2 * * *)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("tms %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the Event Log database
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	eventLogHandler := logging.NewEventLogHandler(textHandler, db)
	logger = slog.New(eventLogHandler)
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	queries := store.New(db)

	// Seed default languages and UI labels
	if cfg.DoSeed {
		if err := store.Seed(ctx, db, logger); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		if cfg.IsDevelopment() {
			if err := store.SeedDemo(ctx, db, logger); err != nil {
				return fmt.Errorf("seeding demo content: %w", err)
			}
		}
	}

	// Initialize resolution cache
	resultCache, err := cache.NewFromConfig(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := resultCache.Close(); err != nil {
			slog.Warn("error closing cache", "error", err)
		}
	}()

	// Warm up the language registry
	registry := cache.NewLanguageRegistry(queries, logger)
	if err := registry.Preload(ctx); err != nil {
		slog.Warn("failed to preload language registry", "error", err)
	}
	slog.Info("language registry ready", "default", registry.DefaultCode(ctx),
		"languages", len(registry.ListEnabled(ctx)))

	// Translation services
	service := translation.NewService(queries, registry, resultCache, logger)
	repairer := translation.NewRepairer(queries, logger)
	preferences := preference.NewController(queries, registry, logger)

	var pipeline *translation.Pipeline
	if cfg.ProviderEnabled() {
		provider := translation.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel,
			int64(cfg.ProviderMaxTokens))
		pipeline = translation.NewPipeline(queries, service, registry, provider, logger,
			cfg.BatchSize, cfg.ItemDelay())
		slog.Info("generation pipeline enabled", "model", cfg.OpenAIModel,
			"batch_size", cfg.BatchSize)
	} else {
		slog.Info("generation pipeline disabled", "reason", "no provider API key")
	}

	// Start the completeness monitor
	sched := scheduler.New(repairer, cfg.MonitorSchedule, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	apiHandler := api.NewHandler(db, service, pipeline, repairer, registry, preferences, logger)

	// Create router
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Language(preferences, registry, logger))

		r.Get("/status", apiHandler.Status)

		r.Route("/languages", func(r chi.Router) {
			r.Get("/", apiHandler.ListLanguages)
			r.Post("/", apiHandler.CreateLanguage)
			r.Put("/{code}/default", apiHandler.SetDefaultLanguage)
		})

		r.Route("/translations", func(r chi.Router) {
			r.Post("/", apiHandler.UpsertTranslations)
			r.Get("/{entityType}/{entityUuid}", apiHandler.GetAllForEntity)
			r.Get("/{entityType}/{entityUuid}/{fieldKey}", apiHandler.GetText)
		})
		r.Get("/ui-translations", apiHandler.ListUITranslations)

		r.Post("/generate", apiHandler.Generate)
		r.Post("/structures/{uuid}/generate", apiHandler.GenerateForStructure)

		r.Route("/repair", func(r chi.Router) {
			r.Get("/assessment", apiHandler.RepairAssess)
			r.Post("/migrate", apiHandler.RepairMigrate)
			r.Get("/validation", apiHandler.RepairValidate)
		})

		r.Route("/users/{uuid}/preferences", func(r chi.Router) {
			r.Get("/", apiHandler.GetPreferences)
			r.Put("/", apiHandler.UpdatePreferences)
		})
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
