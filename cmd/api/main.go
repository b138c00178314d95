// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Tienda HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Open the storage backend (PostgreSQL with migrations, or memory).
//  4. Connect to Redis when configured.
//  5. Wire services and HTTP handlers.
//  6. Bootstrap the administrator account.
//  7. Start HTTP server with graceful shutdown.
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

	"github.com/taibuivan/tienda/internal/api"
	"github.com/taibuivan/tienda/internal/platform/config"
	"github.com/taibuivan/tienda/internal/platform/constants"
	"github.com/taibuivan/tienda/internal/platform/mailer"
	"github.com/taibuivan/tienda/internal/platform/middleware"
	"github.com/taibuivan/tienda/internal/platform/migration"
	pgstore "github.com/taibuivan/tienda/internal/platform/postgres"
	redisstore "github.com/taibuivan/tienda/internal/platform/redis"
	"github.com/taibuivan/tienda/internal/platform/sec"
	"github.com/taibuivan/tienda/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("storage", cfg.StorageDriver),
	)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Redis (optional) ───────────────────────────────────────────────
	var health api.HealthDependencies
	var ledger auth.ResetLedger

	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing_redis_client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis_close_error", slog.Any("error", cerr))
			}
		}()

		ledger = auth.NewRedisResetLedger(rdb)
		health.CheckCache = redisstore.Probe(rdb)
	}

	// ── 4. Storage ────────────────────────────────────────────────────────
	var stores api.Stores

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

		pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
		must(log, err, "connect to postgres")
		defer func() {
			log.Info("closing_postgres_pool")
			pool.Close()
		}()

		stores = api.PostgresStores(pool, ledger)
		health.CheckDatabase = pgstore.Probe(pool)

	default:
		log.Warn("memory_storage_enabled", slog.String("hint", "state is lost on restart"))
		stores = api.MemoryStores()
		if ledger != nil {
			stores.ResetLedger = ledger
		}
	}

	// ── 5. Notification Gateway ───────────────────────────────────────────
	var sender mailer.Sender = mailer.NewLogSender(log)
	if cfg.SMTPHost != "" {
		smtpSender, err := mailer.NewSMTPSender(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		})
		must(log, err, "configure smtp")
		sender = smtpSender
	}

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	tokens := sec.NewTokenService(cfg.JWTSecret, constants.AuthIssuer)

	services := api.NewServices(cfg, stores, api.Dependencies{
		Tokens:   tokens,
		Hasher:   sec.NewBcryptHasher(cfg.BcryptCost),
		Notifier: mailer.NewGateway(sender, cfg.FrontendURL),
		Options:  auth.Options{SessionTTL: cfg.SessionTTL, ResetTokenTTL: cfg.ResetTokenTTL},
		Logger:   log,
	})

	if cfg.AdminEmail != "" {
		must(log, services.Auth.EnsureAdmin(startupCtx, cfg.AdminEmail, cfg.AdminPassword), "bootstrap administrator")
	}

	runCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	go services.Hub.Run(runCtx)

	limiter := middleware.NewRateLimiter(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst)
	go limiter.Run(runCtx)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(cfg, log, tokens, limiter, services.Handlers(cfg, health, log))

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

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	shutdownErr := server.Shutdown(shutdownTimeout)

	// Sockets and the limiter sweep stop after HTTP has drained
	stopBackground()

	// Let queued reset mails finish before the stores close
	services.Auth.Drain()

	if shutdownErr != nil {
		log.Error("shutdown_error", slog.Any("error", shutdownErr))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
