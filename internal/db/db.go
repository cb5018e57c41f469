package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sparkmatch/sparkmatch/internal/config"
)

// NewDB initializes the database connection using DSN from config.
//
// TranslateError is required: the like/match protocol branches on
// gorm.ErrDuplicatedKey to tell benign constraint races from real write
// failures.
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := logger.Warn
	if cfg.App.ENV == "development" {
		logMode = logger.Info // log SQL queries
	}

	database, err := gorm.Open(postgres.Open(cfg.DB.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logMode),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}

	if err := Migrate(database); err != nil {
		return nil, err
	}

	return database, nil
}

// Migrate ensures the schema is in sync with the models.
func Migrate(database *gorm.DB) error {
	if err := database.AutoMigrate(&User{}, &Like{}, &Match{}, &Reel{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
