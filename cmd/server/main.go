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

	"github.com/columbia-shop/columbia/backend/internal/auth"
	"github.com/columbia-shop/columbia/backend/internal/catalog"
	"github.com/columbia-shop/columbia/backend/internal/config"
	"github.com/columbia-shop/columbia/backend/internal/logger"
	"github.com/columbia-shop/columbia/backend/internal/middleware"
	"github.com/columbia-shop/columbia/backend/internal/server"
	"github.com/columbia-shop/columbia/backend/internal/store"
)

const connectTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	log := logger.New(os.Stdout, logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	var products catalog.ProductStore = catalog.DisabledStore{}
	if cfg.CatalogEnabled {
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		pool, err := store.NewPool(connCtx, cfg.DatabaseURL, cfg.DBMaxConns)
		cancel()
		if err != nil {
			fatal(log, "postgres connect", err)
		}
		defer pool.Close()

		pgStore := store.NewPostgresStore(pool, cfg.DBAcquireTimeout)
		if cfg.DBAutoMigrate {
			if err := pgStore.Migrate(ctx); err != nil {
				fatal(log, "postgres migrate", err)
			}
		}
		products = pgStore
		log.Info("postgres.ready", "max_conns", cfg.DBMaxConns, "acquire_timeout", cfg.DBAcquireTimeout.String())
	} else {
		log.Warn("catalog.disabled", "reason", "CATALOG_ENABLED=false")
	}

	// ── Redis ────────────────────────────────────────────────
	var cache catalog.ProductCache
	if cfg.RedisAddr != "" {
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		rdb, err := store.NewRedisClient(connCtx, cfg.RedisAddr, cfg.RedisPassword)
		cancel()
		if err != nil {
			fatal(log, "redis connect", err)
		}
		defer rdb.Close()
		cache = store.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("redis.ready", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL.String())
	}

	// ── MongoDB ──────────────────────────────────────────────
	var audit auth.AuditStore
	if cfg.MongoURI != "" {
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		mongoClient, err := store.NewMongoClient(connCtx, cfg.MongoURI)
		cancel()
		if err != nil {
			fatal(log, "mongo connect", err)
		}
		defer mongoClient.Disconnect(ctx)
		audit = store.NewMongoAudit(mongoClient.Database(cfg.MongoDB))
		log.Info("mongo.ready", "db", cfg.MongoDB)
	}

	// ── MinIO ────────────────────────────────────────────────
	var images catalog.ImageStore
	if cfg.MinioEndpoint != "" {
		connCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		minioStore, err := store.NewMinioStore(
			connCtx, cfg.MinioEndpoint, cfg.MinioAccessKey,
			cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
		)
		cancel()
		if err != nil {
			fatal(log, "minio connect", err)
		}
		images = minioStore
		log.Info("minio.ready", "endpoint", cfg.MinioEndpoint, "bucket", cfg.MinioBucket)
	}

	// ── Admin gate ───────────────────────────────────────────
	var gate middleware.Authorizer = middleware.NewTokenGate(cfg.AdminTokenHash)
	switch {
	case cfg.AdminGate == config.GateOpen:
		gate = middleware.OpenGate{}
		log.Warn("admin.gate_open", "reason", "ADMIN_GATE=open; admin routes are unauthenticated")
	case cfg.AdminTokenHash == "":
		log.Warn("admin.gate_closed", "reason", "ADMIN_TOKEN_HASH not set; admin routes will reject every request")
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(auth.NewEvaluator(auth.AllowList), audit, log)
	catalogHandler := catalog.NewHandler(
		catalog.NewService(products, cache, log), images, cfg.PublicBaseURL, log,
	)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: server.NewRouter(server.Deps{
			Auth:      authHandler,
			Catalog:   catalogHandler,
			Admin:     gate,
			AccessLog: true,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("server.listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		fatal(log, "server", err)
	case sig := <-quit:
		log.Info("server.shutting_down", "signal", sig.String())
	}

	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		log.Error("server.shutdown", "error", err)
	}
}

// fatal logs and exits non-zero. Deferred cleanups do not run.
func fatal(log *slog.Logger, what string, err error) {
	log.Error(what+" failed", "error", err)
	os.Exit(1)
}
