// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Medora HTTP API server.
//
// # Startup Sequence
//
//  1. Load configuration from the environment (.env optional).
//  2. Initialize the zap logger and GOMAXPROCS.
//  3. Connect to PostgreSQL (pgxpool) and Redis.
//  4. Run database migrations (idempotent).
//  5. Wire repositories, services and handlers.
//  6. Start the activity recorder and the HTTP server; shut both down on SIGINT/SIGTERM.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/automaxprocs/maxprocs"
	"go.uber.org/zap"

	"github.com/taibuivan/medora/internal/activity"
	"github.com/taibuivan/medora/internal/api"
	"github.com/taibuivan/medora/internal/auth"
	"github.com/taibuivan/medora/internal/cart"
	"github.com/taibuivan/medora/internal/employee"
	"github.com/taibuivan/medora/internal/notification"
	"github.com/taibuivan/medora/internal/order"
	"github.com/taibuivan/medora/internal/platform/cache"
	"github.com/taibuivan/medora/internal/platform/config"
	"github.com/taibuivan/medora/internal/platform/constants"
	"github.com/taibuivan/medora/internal/platform/logger"
	"github.com/taibuivan/medora/internal/platform/metrics"
	"github.com/taibuivan/medora/internal/platform/migration"
	pgstore "github.com/taibuivan/medora/internal/platform/postgres"
	redisstore "github.com/taibuivan/medora/internal/platform/redis"
	"github.com/taibuivan/medora/internal/platform/sec"
	"github.com/taibuivan/medora/internal/product"
	"github.com/taibuivan/medora/internal/task"
	"github.com/taibuivan/medora/internal/upload"
	"github.com/taibuivan/medora/internal/user"
)

func main() {
	// ── 1. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		bootLog, _ := zap.NewProduction()
		bootLog.Fatal("startup_failure", zap.String("context", "load configuration"), zap.Error(err))
	}

	// ── 2. Logger ─────────────────────────────────────────────────────────
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log, flush := logger.New(logger.Options{
		Level:    level,
		JSON:     !cfg.IsDevelopment(),
		Rotation: logger.Rotation{Filename: cfg.LogFile},
		Fields:   []zap.Field{zap.String("app", constants.AppName), zap.String("version", constants.AppVersion)},
	})
	defer flush()

	if _, err := maxprocs.Set(maxprocs.Logger(log.Sugar().Infof)); err != nil {
		log.Warn("maxprocs_set_failed", zap.Error(err))
	}

	log.Info("configuration_loaded",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.ServerPort),
	)

	// Startup gets a deadline so misconfiguration fails fast instead of hanging.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, pgstore.PoolOptions{MaxConns: cfg.DBMaxConns, MinConns: cfg.DBMinConns}, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, cfg.RedisPoolSize, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing_redis_client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis_close_failed", zap.Error(cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Shared Infrastructure ──────────────────────────────────────────
	tokens, err := sec.NewTokenService([]byte(cfg.JWTSecret), constants.AuthIssuer, cfg.JWTTTL)
	must(log, err, "initialize token service")

	txManager := pgstore.NewTxManager(pool)
	collector := metrics.NewCollector()

	uploads, err := upload.NewService(cfg.UploadDir, upload.NewPostgresRepository(pool), log)
	must(log, err, "prepare upload directory")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	recorder := activity.NewAsyncRecorder(activity.NewPostgresRepository(pool), cfg.ActivityQueueSize, cfg.ActivityWorkers, collector, log)
	recorderCtx, stopRecorder := context.WithCancel(context.Background())
	recorderDone := make(chan error, 1)
	go func() { recorderDone <- recorder.Run(recorderCtx) }()

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	users := user.NewService(user.NewPostgresRepository(pool), log)
	employees := employee.NewService(
		employee.NewPostgresRepository(pool),
		employee.NewPostgresSequence(pool),
		txManager,
		cfg.EmployeeIDPrefix,
		log,
	)
	authService := auth.NewService(users, employees, tokens, auth.NewRedisRevocationStore(rdb), log)
	products := product.NewService(
		product.NewPostgresRepository(pool),
		cache.New(cache.NewRedisStore(rdb)),
		cfg.ProductCacheTTL,
		uploads,
		log,
	)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
		CheckCache:    func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
	}, log)

	audited := activity.Middleware(recorder)

	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Auth:         auth.NewHandler(authService),
		User:         user.NewHandler(users),
		Employee:     employee.NewHandler(employees, uploads),
		Task:         task.NewHandler(task.NewService(task.NewPostgresRepository(pool), employees, txManager, log), audited),
		Notification: notification.NewHandler(notification.NewService(notification.NewPostgresRepository(pool), employees, log), audited),
		Activity:     activity.NewHandler(activity.NewService(activity.NewPostgresRepository(pool))),
		Product:      product.NewHandler(products, uploads),
		Cart:         cart.NewHandler(cart.NewService(cart.NewPostgresRepository(pool), products, log)),
		Order:        order.NewHandler(order.NewService(order.NewPostgresRepository(pool), products, txManager, log), audited),
		Upload:       upload.NewHandler(uploads),
	}

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, api.Dependencies{
		Verifier:  authService,
		Metrics:   collector,
		UploadDir: cfg.UploadDir,
	}, handlers)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_signal_received")
	case err := <-serverErr:
		log.Error("server_failed", zap.Error(err))
	}

	log.Info("shutting_down_server", zap.Duration("timeout", constants.ShutdownTimeout))
	if err := server.Shutdown(constants.ShutdownTimeout); err != nil {
		log.Error("shutdown_failed", zap.Error(err))
	}

	// Requests are finished; flush queued activity entries before the pool closes.
	stopRecorder()
	if err := <-recorderDone; err != nil {
		log.Error("activity_recorder_failed", zap.Error(err))
	}

	log.Info("server_stopped")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
// It is limited to startup wiring; after startup every error is returned and handled.
func must(log *zap.Logger, err error, step string) {
	if err != nil {
		log.Fatal("startup_failure", zap.String("context", step), zap.Error(err))
	}
}
