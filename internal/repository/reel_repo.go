package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/db"
)

// ReelRepository provides data access methods for the Reel model.
type ReelRepository struct {
	db *gorm.DB
}

// NewReelRepository creates a new repository bound to the given DB connection.
func NewReelRepository(database *gorm.DB) *ReelRepository {
	return &ReelRepository{db: database}
}

// Create inserts a new reel row.
func (r *ReelRepository) Create(ctx context.Context, reel *db.Reel) error {
	return r.db.WithContext(ctx).Create(reel).Error
}

// ListByUser returns a user's reels, newest first.
func (r *ReelRepository) ListByUser(ctx context.Context, userID string) ([]db.Reel, error) {
	var reels []db.Reel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&reels).Error
	return reels, err
}
