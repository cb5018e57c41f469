package main

import (
	"context"

	"github.com/sparkmatch/sparkmatch/internal/app"
	"github.com/sparkmatch/sparkmatch/internal/cache"
	"github.com/sparkmatch/sparkmatch/internal/config"
	"github.com/sparkmatch/sparkmatch/internal/db"
	"github.com/sparkmatch/sparkmatch/internal/logger"
	"github.com/sparkmatch/sparkmatch/internal/server"
	"github.com/sparkmatch/sparkmatch/internal/service/account"
	"github.com/sparkmatch/sparkmatch/internal/service/discover"
	"github.com/sparkmatch/sparkmatch/internal/service/media"
	"github.com/sparkmatch/sparkmatch/internal/storage"
)

func main() {
	cfg := config.New()

	// Init logger (global singleton)
	logger.InitFromConfig(cfg)
	log := logger.L()

	// Init DB
	database, err := db.NewDB(cfg)
	if err != nil {
		log.Error("failed to init db", "err", err)
		return
	}

	// Init Redis
	redisCache := cache.NewRedisCache(cfg)
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Error("failed to connect to redis", "err", err)
		return
	}

	// Init media storage
	mediaStore, err := storage.NewLocalMediaStore(cfg)
	if err != nil {
		log.Error("failed to init media storage", "err", err)
		return
	}

	appCtx := app.New(cfg, database, redisCache, log)

	registrars := []server.Registrar{
		account.NewRegistrar(appCtx),
		discover.NewRegistrar(appCtx),
		media.NewRegistrar(appCtx, mediaStore),
	}

	if cfg.App.ENV == "development" {
		if err := db.SeedTestData(database); err != nil {
			log.Error("failed to seed", "err", err)
		}
	}

	addr := cfg.HTTP.Host + ":" + cfg.HTTP.Port
	log.Info("starting HTTP server", "addr", addr)

	if err := server.Start(cfg, registrars...); err != nil {
		log.Error("failed to start HTTP server", "err", err)
	}
}
