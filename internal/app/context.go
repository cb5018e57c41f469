package app

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/cache"
	"github.com/sparkmatch/sparkmatch/internal/config"
)

// AppContext holds shared dependencies (DB, Redis, Logger, config).
type AppContext struct {
	Cfg        *config.Config
	DB         *gorm.DB
	RedisCache *cache.RedisCache
	Logger     *slog.Logger
}

// New creates a new AppContext.
func New(cfg *config.Config, database *gorm.DB, rdb *cache.RedisCache, logger *slog.Logger) *AppContext {
	return &AppContext{
		Cfg:        cfg,
		DB:         database,
		RedisCache: rdb,
		Logger:     logger,
	}
}
