package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	_ "github.com/sentinelforce/agency-api/docs"
	"github.com/sentinelforce/agency-api/internal/api"
	"github.com/sentinelforce/agency-api/internal/api/handler"
	"github.com/sentinelforce/agency-api/internal/core/ports"
	"github.com/sentinelforce/agency-api/internal/core/service"
	"github.com/sentinelforce/agency-api/internal/infrastructure/db/mongo"
	"github.com/sentinelforce/agency-api/internal/infrastructure/db/redis"
	"github.com/sentinelforce/agency-api/internal/infrastructure/queue"
	"github.com/sentinelforce/agency-api/internal/pkg/config"
	"github.com/sentinelforce/agency-api/pkg/logger"
)

// @title        Security Agency API
// @version      1.0
// @description  Users, contact messages and security-guard records with admin-gated mutations.
// @BasePath     /

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "agency-api",
	})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("starting security agency API")

	ctx := context.Background()

	store, err := mongo.Open(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to create MongoDB indexes")
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB connected")

	var (
		rdb     *goredis.Client
		limiter ports.SubmissionLimiter
		cache   handler.Pinger
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		limiter = redis.NewSubmissionLimiter(rdb, cfg.Messages.RateLimit, cfg.Messages.RateWindow)
		cache = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connected, contact submissions are rate limited")
	}

	// --- Repositories ---
	users := mongo.NewUserRepository(store.Database())
	messages := mongo.NewMessageRepository(store.Database())
	guards := mongo.NewGuardRepository(store.Database())

	// --- Audit trail ---
	auditCtx, stopAudit := context.WithCancel(ctx)
	audit := queue.NewAuditDispatcher(cfg.Audit.Workers, mongo.NewAuditRepository(store.Database()), log)
	audit.Start(auditCtx)

	// --- Services ---
	authz := service.NewAdminAuthorizer(users, log)

	e := api.NewRouter(api.Dependencies{
		Users:      service.NewUserService(users, authz, audit, log),
		Messages:   service.NewMessageService(messages, authz, limiter, audit, log),
		Guards:     service.NewGuardService(guards, authz, audit, log),
		Store:      store,
		Cache:      cache,
		Logger:     log,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ":"+cfg.Port).Msg("HTTP server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
		exitCode = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	stopAudit()
	audit.Wait()

	if err := store.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("MongoDB disconnect error")
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("Redis close error")
		}
	}

	log.Info().Msg("server exited")
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
