package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AgeRange bounds the ages a user wants to see.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Preferences is the discovery filter a user configures.
// An empty GenderPreference list means no gender filtering.
type Preferences struct {
	AgeRange         AgeRange `json:"age_range"`
	Distance         int      `json:"distance"`
	GenderPreference []string `json:"gender_preference"`
	Dealbreakers     []string `json:"dealbreakers"`
}

// Lifestyle holds free-form lifestyle answers shown on the profile card.
type Lifestyle struct {
	Smoking  string `json:"smoking"`
	Drinking string `json:"drinking"`
	Exercise string `json:"exercise"`
	Pets     string `json:"pets"`
}

// Prompt is a question/answer pair on a profile.
type Prompt struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Image    string `json:"image,omitempty"`
}

// User table. Preferences and the other structured fields are stored as
// JSON columns (jsonb on Postgres).
type User struct {
	ID                string                           `gorm:"primaryKey;size:36" json:"id"`
	FullName          string                           `gorm:"size:128" json:"full_name"`
	Username          string                           `gorm:"uniqueIndex;size:64;not null" json:"username"`
	Email             string                           `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash      string                           `gorm:"size:255;not null" json:"-"`
	Gender            string                           `gorm:"size:16;not null" json:"gender"`
	Birthdate         string                           `gorm:"size:10" json:"birthdate"`
	Bio               string                           `gorm:"type:text" json:"bio"`
	AvatarURL         string                           `gorm:"size:512" json:"avatar_url"`
	Location          string                           `gorm:"size:128" json:"location"`
	Occupation        string                           `gorm:"size:128" json:"occupation"`
	Education         string                           `gorm:"size:128" json:"education"`
	Height            int                              `json:"height"`
	Photos            datatypes.JSONSlice[string]      `json:"photos"`
	Interests         datatypes.JSONSlice[string]      `json:"interests"`
	Languages         datatypes.JSONSlice[string]      `json:"languages"`
	Lifestyle         datatypes.JSONType[Lifestyle]    `json:"lifestyle"`
	Prompts           datatypes.JSONSlice[Prompt]      `json:"prompts"`
	Preferences       datatypes.JSONType[Preferences]  `json:"preferences"`
	Instagram         string                           `gorm:"size:128" json:"instagram"`
	Spotify           string                           `gorm:"size:128" json:"spotify"`
	RelationshipGoals string                           `gorm:"size:64" json:"relationship_goals"`
	CreatedAt         time.Time                        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time                        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Like is a directed edge: FromUserID liked ToUserID.
//
// Unique index on (from_user_id, to_user_id) guarantees at most one edge
// per ordered pair; the like protocol relies on the duplicate-key error
// this produces under concurrent inserts.
//
// idx_to_created(to_user_id, created_at DESC, from_user_id) backs the
// "who liked you" list with cursor pagination.
type Like struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	FromUserID string    `gorm:"size:36;not null;uniqueIndex:idx_from_to,priority:1" json:"from_user_id"`
	ToUserID   string    `gorm:"size:36;not null;uniqueIndex:idx_from_to,priority:2;index:idx_to_created,priority:1" json:"to_user_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_to_created,priority:2,sort:desc" json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Match materializes a mutual like between two users.
//
// UserA/UserB are stored in lexicographic order so the unique index on
// (user_a, user_b) covers the unordered pair. The row is a cache of the
// fact "both directional Likes exist", not the source of truth.
type Match struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserA     string    `gorm:"size:36;not null;uniqueIndex:idx_pair,priority:1" json:"user_a"`
	UserB     string    `gorm:"size:36;not null;uniqueIndex:idx_pair,priority:2" json:"user_b"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Reel is a short profile video.
type Reel struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"size:36;not null;index" json:"user_id"`
	VideoURL     string    `gorm:"size:512;not null" json:"video_url"`
	ThumbnailURL string    `gorm:"size:512" json:"thumbnail_url"`
	Caption      string    `gorm:"size:256" json:"caption"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Reel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
