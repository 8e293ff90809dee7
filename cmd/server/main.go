package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/salesai/dashboard-system/internal/api"
	mongodb "github.com/salesai/dashboard-system/internal/infrastructure/db/mongo"
	redisdb "github.com/salesai/dashboard-system/internal/infrastructure/db/redis"
	"github.com/salesai/dashboard-system/internal/pkg/config"
	"github.com/salesai/dashboard-system/internal/webapp"
	"github.com/salesai/dashboard-system/internal/webapp/apiclient"
	"github.com/salesai/dashboard-system/internal/webapp/session"
	"github.com/salesai/dashboard-system/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "salesdash",
		Pretty:  cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("disconnecting from MongoDB")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensuring MongoDB indexes")
	}

	// --- Session storage (Redis when configured, in-process otherwise) ---
	var (
		sessions session.Store
		flags    session.FlagStore
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connecting to Redis")
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn().Err(err).Msg("closing Redis client")
			}
		}()
		sessions = redisdb.NewSessionStore(rdb)
		flags = redisdb.NewFlagStore(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using Redis session storage")
	} else {
		sessions = session.NewMemoryStore()
		flags = session.NewMemoryFlags()
		log.Info().Msg("using in-process session storage")
	}

	// --- Servers ---
	apiRouter := api.NewRouter(client, db)
	webRouter := webapp.NewRouter(apiclient.New(cfg.APIBaseURL), sessions, flags, cfg.SessionSecret)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("API server listening")
		if err := apiRouter.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("API server failed")
		}
	}()
	go func() {
		log.Info().Str("port", cfg.WebPort).Msg("webapp server listening")
		if err := webRouter.Start(":" + cfg.WebPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("webapp server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := webRouter.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("webapp server shutdown")
	}
	if err := apiRouter.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("API server shutdown")
	}
}
