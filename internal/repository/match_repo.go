package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/db"
)

// MatchRepository provides data access methods for the Match model.
type MatchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new repository bound to the given DB connection.
func NewMatchRepository(database *gorm.DB) *MatchRepository {
	return &MatchRepository{db: database}
}

// NormalizePair orders two user ids lexicographically so the unordered
// pair maps to exactly one (user_a, user_b) row.
func NormalizePair(id1, id2 string) (string, string) {
	if id2 < id1 {
		return id2, id1
	}
	return id1, id2
}

// Create materializes a match for the unordered pair (id1, id2).
//
// A concurrent duplicate insert fails with gorm.ErrDuplicatedKey, which
// the caller treats as benign: the row already exists.
func (r *MatchRepository) Create(ctx context.Context, id1, id2 string) error {
	a, b := NormalizePair(id1, id2)
	match := db.Match{UserA: a, UserB: b, IsActive: true}
	return r.db.WithContext(ctx).Create(&match).Error
}

// ActiveFor returns all active matches involving the given user.
func (r *MatchRepository) ActiveFor(ctx context.Context, userID string) ([]db.Match, error) {
	var matches []db.Match
	err := r.db.WithContext(ctx).
		Where("(user_a = ? OR user_b = ?) AND is_active = ?", userID, userID, true).
		Order("created_at DESC").
		Find(&matches).Error
	return matches, err
}

// CountForPair returns the number of match rows for the unordered pair.
// Test helper for the no-duplicate-matches guarantee.
func (r *MatchRepository) CountForPair(ctx context.Context, id1, id2 string) (int64, error) {
	a, b := NormalizePair(id1, id2)
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Match{}).
		Where("user_a = ? AND user_b = ?", a, b).
		Count(&count).Error
	return count, err
}
