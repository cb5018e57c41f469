package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/db"
)

// UserRepository provides data access methods for the User model.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// GetByID fetches a user by primary key.
// Returns gorm.ErrRecordNotFound when the id does not resolve.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail fetches a user by email for login.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user row. Unique indexes on username and email
// surface duplicates as gorm.ErrDuplicatedKey.
func (r *UserRepository) Create(ctx context.Context, user *db.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// UpdateFields applies a partial update to the user row.
// Only the columns present in fields are touched.
func (r *UserRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// FindCandidates returns up to limit users the actor has not evaluated.
//
// Behavior:
//   - Excludes the actor and anyone the actor already liked.
//   - When genders is non-empty, only users with a matching gender are
//     returned; an empty list applies no gender filter.
//   - Ordering is arbitrary: callers must not rely on it.
func (r *UserRepository) FindCandidates(
	ctx context.Context,
	actorID string,
	genders []string,
	limit int,
) ([]db.User, error) {
	var users []db.User

	query := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id <> ?", actorID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM likes l
				WHERE l.from_user_id = ?
				  AND l.to_user_id = users.id
			)`, actorID).
		Limit(limit)

	if len(genders) > 0 {
		query = query.Where("gender IN ?", genders)
	}

	err := query.Find(&users).Error
	return users, err
}
