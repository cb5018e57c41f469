package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/db"
	"github.com/sparkmatch/sparkmatch/internal/utils/pagination"
)

// LikeRepository provides data access methods for the Like model.
// It encapsulates all queries over the directed like edges between users.
type LikeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new repository bound to the given DB connection.
func NewLikeRepository(database *gorm.DB) *LikeRepository {
	return &LikeRepository{db: database}
}

// Exists reports whether a like edge fromID → toID is recorded.
func (r *LikeRepository) Exists(ctx context.Context, fromID, toID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		Count(&count).Error
	return count > 0, err
}

// Create inserts the like edge fromID → toID.
//
// The unique index on (from_user_id, to_user_id) makes a concurrent
// duplicate insert fail with gorm.ErrDuplicatedKey. That error is
// returned as-is; the caller decides whether the race is benign.
func (r *LikeRepository) Create(ctx context.Context, fromID, toID string) error {
	like := db.Like{FromUserID: fromID, ToUserID: toID}
	return r.db.WithContext(ctx).Create(&like).Error
}

// GetLikers returns likes received by the given user, newest first.
//
// Behavior:
//   - Ordered by created_at DESC, from_user_id DESC.
//   - Supports cursor-based pagination via paginationToken.
//
// Example:
//
//	repo.GetLikers(ctx, "u-42", nil, 20) // first 20 people who liked u-42
func (r *LikeRepository) GetLikers(
	ctx context.Context,
	toID string,
	paginationToken *string,
	limit int,
) ([]db.Like, *string, error) {
	var likes []db.Like

	cursor, err := pagination.Decode(getString(paginationToken))
	if err != nil {
		return nil, nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("to_user_id = ?", toID).
		Order("created_at DESC, from_user_id DESC").
		Limit(limit + 1)

	if cursor.LikerID != "" && cursor.CreatedUnix > 0 {
		ts := time.UnixMilli(cursor.CreatedUnix)
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND from_user_id < ?))",
			ts, ts, cursor.LikerID,
		)
	}

	if err := query.Find(&likes).Error; err != nil {
		return nil, nil, err
	}

	var nextToken *string
	if len(likes) > limit {
		last := likes[limit-1]
		token, _ := pagination.Encode(pagination.Cursor{
			LikerID:     last.FromUserID,
			CreatedUnix: last.CreatedAt.UnixMilli(),
		})
		nextToken = &token
		likes = likes[:limit]
	}

	return likes, nextToken, nil
}

// CountLikers returns how many users liked the given user.
// Used in conjunction with the Redis counter (DB is the fallback).
func (r *LikeRepository) CountLikers(ctx context.Context, toID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("to_user_id = ?", toID).
		Count(&count).Error
	return count, err
}

// CountForPair returns the number of like rows for the ordered pair.
// Test helper for the no-duplicate-likes guarantee.
func (r *LikeRepository) CountForPair(ctx context.Context, fromID, toID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&db.Like{}).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		Count(&count).Error
	return count, err
}

// getString safely dereferences a string pointer for pagination tokens.
func getString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
