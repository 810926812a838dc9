package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/myne7x/store-api/internal/api"
	"github.com/myne7x/store-api/internal/infrastructure/config"
	mongodb "github.com/myne7x/store-api/internal/infrastructure/db/mongo"
	redisdb "github.com/myne7x/store-api/internal/infrastructure/db/redis"
	"github.com/myne7x/store-api/internal/infrastructure/queue"
	"github.com/myne7x/store-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title Myne7x Store API
// @version 1.0
// @description Digital goods storefront: catalog, access requests, entitlements, notifications and tasks.
// @BasePath /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("redis close failed")
		}
	}()

	notificationRepo := mongodb.NewNotificationRepository(db)
	dispatcher := queue.NewDispatcher(cfg.Notify.Workers, notificationRepo, log)
	dispatcher.Start(ctx)

	e := api.NewRouter(db, rdb, cfg.JWTSecret, dispatcher, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	log.Info().Msg("server exited")
	os.Exit(0)
}

// ensureIndexes creates the indexes every repository relies on. Index creation
// is idempotent, so running it on every boot is safe.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for _, r := range []interface {
		EnsureIndexes(context.Context) error
	}{
		mongodb.NewProductRepository(db),
		mongodb.NewRequestRepository(db),
		mongodb.NewDownloadRepository(db),
		mongodb.NewNotificationRepository(db),
		mongodb.NewTaskRepository(db),
		mongodb.NewProfileRepository(db),
	} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	return nil
}
