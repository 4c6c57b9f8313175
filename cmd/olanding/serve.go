// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/olegiv/olanding/internal/auth"
	"github.com/olegiv/olanding/internal/cache"
	"github.com/olegiv/olanding/internal/config"
	"github.com/olegiv/olanding/internal/handler"
	"github.com/olegiv/olanding/internal/logging"
	"github.com/olegiv/olanding/internal/render"
	"github.com/olegiv/olanding/internal/service"
	"github.com/olegiv/olanding/internal/session"
	"github.com/olegiv/olanding/internal/store"
	"github.com/olegiv/olanding/internal/version"
	"github.com/olegiv/olanding/web"
)

func newServeCmd(info version.Info) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), info)
		},
	}
}

// openDB creates the data directory, opens the database and applies migrations.
func openDB(cfg *config.Config) (*sqlx.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

func serve(ctx context.Context, info version.Info) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: os.Stdout,
	})
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logger)

	slog.Info("starting olanding", "version", info.Short(), "commit", info.GitCommit, "env", cfg.Env)

	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()

	queries := store.New(db)
	if err := store.Seed(ctx, queries, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	slog.Info("database ready")

	appCache, backend := cache.New(ctx, cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: cfg.CacheTTL,
	}, logger)
	defer func() { _ = appCache.Close() }()
	slog.Info("cache initialized", "backend", backend)

	landing := service.NewLandingService(queries, appCache, cfg.CacheTTL, logger)
	deps := service.Deps{
		Queries: queries,
		Uploads: service.NewUploadManager(cfg.UploadsDir, cfg.MaxUploadBytes(), logger),
		Cache:   landing,
		Logger:  logger,
	}
	services := handler.Services{
		Auth:      service.NewAuthService(deps),
		Sections:  service.NewSectionService(deps),
		Schools:   service.NewSchoolService(deps),
		Events:    service.NewEventService(deps),
		Team:      service.NewTeamService(deps),
		Inbox:     service.NewInbox(deps),
		Landing:   landing,
		Dashboard: service.NewDashboard(queries),
	}

	sessions := session.NewManager(session.New(db.DB, cfg.IsDevelopment()))

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS: templatesFS,
		Sessions:    sessions,
		IsDev:       cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("loading static assets: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sp, ok := appCache.(cache.StatsProvider); ok {
		registerCacheMetrics(registry, sp, backend)
	}

	r := handler.NewRouter(handler.RouterConfig{
		DB:             db.DB,
		Sessions:       sessions,
		Guard:          auth.NewGuard(),
		Renderer:       renderer,
		Services:       services,
		Logger:         logger,
		Static:         staticFS,
		UploadsDir:     cfg.UploadsDir,
		MaxUpload:      cfg.MaxUploadBytes(),
		IsDev:          cfg.IsDevelopment(),
		CSRFKey:        []byte(cfg.SessionSecret),
		TrustedOrigins: cfg.TrustedOrigins,
		Cache:          appCache,
		CacheBackend:   backend,
		Registry:       registry,
		Version:        info,
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // uploads
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// registerCacheMetrics exposes the landing cache counters on /metrics.
func registerCacheMetrics(reg prometheus.Registerer, sp cache.StatsProvider, backend string) {
	labels := prometheus.Labels{"backend": backend}
	reg.MustRegister(
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "olanding_cache_hits_total",
			Help:        "Landing cache hits.",
			ConstLabels: labels,
		}, func() float64 { return float64(sp.Stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Name:        "olanding_cache_misses_total",
			Help:        "Landing cache misses.",
			ConstLabels: labels,
		}, func() float64 { return float64(sp.Stats().Misses) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name:        "olanding_cache_items",
			Help:        "Entries held by the memory cache.",
			ConstLabels: labels,
		}, func() float64 { return float64(sp.Stats().Items) }),
	)
}
