// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tagbook HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Run database migrations (idempotent).
//  5. Build the rate limiter (Redis when configured, in-memory otherwise).
//  6. Load the token verifier when the write guard is enabled.
//  7. Wire stores, services and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taibuivan/tagbook/internal/api"
	"github.com/taibuivan/tagbook/internal/core/entry"
	"github.com/taibuivan/tagbook/internal/core/info"
	"github.com/taibuivan/tagbook/internal/core/tag"
	"github.com/taibuivan/tagbook/internal/platform/config"
	"github.com/taibuivan/tagbook/internal/platform/constants"
	"github.com/taibuivan/tagbook/internal/platform/middleware"
	"github.com/taibuivan/tagbook/internal/platform/migration"
	pgstore "github.com/taibuivan/tagbook/internal/platform/postgres"
	redisstore "github.com/taibuivan/tagbook/internal/platform/redis"
	"github.com/taibuivan/tagbook/internal/platform/sec"
)

func main() {
	// 1. Logger
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// 2. Configuration
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("default_locale", cfg.DefaultLocale),
		slog.Bool("write_guard", cfg.WriteGuardEnabled()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Lives as long as the process; stops background workers on shutdown.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// 3. PostgreSQL
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// 4. Migrations
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// 5. Rate limiter
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}

	var limiter middleware.Limiter
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		limiter = middleware.NewRedisLimiter(rdb, cfg.RateLimitRPS, constants.RateLimitWindow)
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	} else {
		limiter = middleware.NewMemoryLimiter(appCtx, cfg.RateLimitRPS, cfg.RateLimitBurst)
		log.Info("rate_limiter_in_memory")
	}

	// 6. Write guard
	var verifier middleware.TokenVerifier
	if cfg.WriteGuardEnabled() {
		tokenVerifier, err := sec.NewTokenVerifier(cfg.JWTPubKeyPath, cfg.JWTIssuer)
		must(log, err, "initialize token verifier")
		verifier = tokenVerifier
	}
	guard := middleware.WriteGuard(cfg.WriteGuardEnabled())

	// 7. Domain Wiring
	tagRepository := tag.NewPostgresRepository(pool)
	tagService := tag.NewService(tagRepository, log)

	entryRepository := entry.NewPostgresRepository(pool, tagRepository)
	entryService := entry.NewService(entryRepository, cfg.DefaultLocale, log)

	infoService := info.NewService(info.NewPostgresRepository(pool), cfg.DefaultLocale)

	liveness, readiness := api.NewHealthHandlers(health, log)

	// 8. HTTP Server
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Info:      info.NewHandler(infoService),
		Tag:       tag.NewHandler(tagService, guard),
		Entry:     entry.NewHandler(entryService, tagService, guard),
	}

	server := api.NewServer(cfg, log, limiter, verifier, handlers)

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
