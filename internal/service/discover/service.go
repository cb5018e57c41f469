package discover

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/app"
	"github.com/sparkmatch/sparkmatch/internal/db"
	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
	"github.com/sparkmatch/sparkmatch/internal/repository"
)

// candidateLimit caps a single discover page.
const candidateLimit = 50

// likedYouPageSize is the page size for the liked-you list.
const likedYouPageSize = 20

// Service implements the discover flow: candidate selection, the
// like/match protocol, active matches and the liked-you list.
type Service struct {
	appCtx    *app.AppContext
	userRepo  *repository.UserRepository
	likeRepo  *repository.LikeRepository
	matchRepo *repository.MatchRepository
}

// NewService creates a discover service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:    appCtx,
		userRepo:  repository.NewUserRepository(appCtx.DB),
		likeRepo:  repository.NewLikeRepository(appCtx.DB),
		matchRepo: repository.NewMatchRepository(appCtx.DB),
	}
}

// LikeResult is the outcome of a like call.
type LikeResult struct {
	IsMatch     bool     `json:"isMatch"`
	MatchedUser *db.User `json:"matchedUser,omitempty"`
}

// Like records that actorID likes targetID and reports whether that
// completes a mutual match.
//
// Two invocations for the same pair may run concurrently (double-tap,
// or both parties liking each other at once) and no transaction spans
// the steps, so duplicate-key errors on the like and match inserts are
// treated as benign races, never as failures.
//
// The match row is a materialized cache; the authoritative fact is that
// both directional likes exist. A failure writing the match row is
// logged and the caller still gets isMatch=true.
func (s *Service) Like(ctx context.Context, actorID, targetID string) (*LikeResult, error) {
	if actorID == "" {
		return nil, svcErr.Unauthenticated("no authenticated user")
	}
	if targetID == "" {
		return nil, svcErr.InvalidArgument("target user id is required")
	}
	if targetID == actorID {
		return nil, svcErr.InvalidArgument("cannot like yourself")
	}

	s.appCtx.Logger.Debug("Like called", "actor", actorID, "target", targetID)

	// step 1: skip the insert when the edge already exists (retry or
	// duplicate UI trigger)
	alreadyLiked, err := s.likeRepo.Exists(ctx, actorID, targetID)
	if err != nil {
		return nil, svcErr.Persistence("failed to check existing like", err)
	}

	if !alreadyLiked {
		// step 2: record the like; a duplicate-key error means a
		// concurrent call won the insert, which is fine
		if err := s.likeRepo.Create(ctx, actorID, targetID); err != nil {
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, svcErr.Persistence("failed to create like", err)
			}
			s.appCtx.Logger.Debug("like already inserted concurrently", "actor", actorID, "target", targetID)
		} else if err := s.appCtx.RedisCache.IncrLikeCount(ctx, targetID); err != nil {
			s.appCtx.Logger.Warn("failed to bump like counter", "target", targetID, "err", err)
		}
	}

	// step 3: reciprocal edge decides the match
	mutual, err := s.likeRepo.Exists(ctx, targetID, actorID)
	if err != nil {
		return nil, svcErr.Persistence("failed to check reciprocal like", err)
	}
	if !mutual {
		return &LikeResult{IsMatch: false}, nil
	}

	// step 4: materialize the match row; never fatal
	if err := s.matchRepo.Create(ctx, actorID, targetID); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		s.appCtx.Logger.Error("failed to create match row", "actor", actorID, "target", targetID, "err", err)
	}

	// step 5: hydrate the matched profile
	matched, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("matched user does not exist")
		}
		return nil, svcErr.Persistence("failed to fetch matched user", err)
	}

	return &LikeResult{IsMatch: true, MatchedUser: matched}, nil
}

// Candidates returns up to 50 users the actor has not evaluated yet,
// filtered by the actor's gender preference. An empty preference list
// means no gender filtering; new users with unset preferences see
// everyone. Ordering is arbitrary.
func (s *Service) Candidates(ctx context.Context, actorID string) ([]db.User, error) {
	if actorID == "" {
		return nil, svcErr.Unauthenticated("no authenticated user")
	}

	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.Unauthenticated("authenticated user no longer exists")
		}
		return nil, svcErr.Persistence("failed to load actor profile", err)
	}

	genders := actor.Preferences.Data().GenderPreference
	users, err := s.userRepo.FindCandidates(ctx, actorID, genders, candidateLimit)
	if err != nil {
		return nil, svcErr.Persistence("failed to fetch candidates", err)
	}
	return users, nil
}

// ActiveMatches returns the profiles on the other side of every active
// match involving the actor. Rows whose counterpart profile is gone are
// skipped rather than failing the whole list.
func (s *Service) ActiveMatches(ctx context.Context, actorID string) ([]db.User, error) {
	if actorID == "" {
		return nil, svcErr.Unauthenticated("no authenticated user")
	}

	matches, err := s.matchRepo.ActiveFor(ctx, actorID)
	if err != nil {
		return nil, svcErr.Persistence("failed to fetch matches", err)
	}

	users := make([]db.User, 0, len(matches))
	for _, m := range matches {
		otherID := m.UserA
		if otherID == actorID {
			otherID = m.UserB
		}
		other, err := s.userRepo.GetByID(ctx, otherID)
		if err != nil {
			s.appCtx.Logger.Warn("skipping match with missing profile", "match", m.ID, "user", otherID, "err", err)
			continue
		}
		users = append(users, *other)
	}
	return users, nil
}

// Liker is one entry in the liked-you list.
type Liker struct {
	UserID        string `json:"user_id"`
	UnixTimestamp int64  `json:"unix_timestamp"`
}

// LikedYouPage is a cursor-paginated slice of likers.
type LikedYouPage struct {
	Likers    []Liker `json:"likers"`
	NextToken *string `json:"next_pagination_token,omitempty"`
}

// LikedYou lists who liked the actor, newest first, cursor paginated.
func (s *Service) LikedYou(ctx context.Context, actorID string, paginationToken *string) (*LikedYouPage, error) {
	if actorID == "" {
		return nil, svcErr.Unauthenticated("no authenticated user")
	}

	likes, nextToken, err := s.likeRepo.GetLikers(ctx, actorID, paginationToken, likedYouPageSize)
	if err != nil {
		return nil, svcErr.Persistence("failed to fetch likers", err)
	}

	page := &LikedYouPage{Likers: make([]Liker, 0, len(likes)), NextToken: nextToken}
	for _, l := range likes {
		page.Likers = append(page.Likers, Liker{
			UserID:        l.FromUserID,
			UnixTimestamp: l.CreatedAt.UnixMilli(),
		})
	}
	return page, nil
}

// LikedYouCount returns how many users liked the actor.
// Cache-first: Redis counter with TTL refresh, DB count on a miss.
func (s *Service) LikedYouCount(ctx context.Context, actorID string) (int64, error) {
	if actorID == "" {
		return 0, svcErr.Unauthenticated("no authenticated user")
	}

	if count, ok, err := s.appCtx.RedisCache.GetLikeCount(ctx, actorID); err == nil && ok {
		return count, nil
	}

	count, err := s.likeRepo.CountLikers(ctx, actorID)
	if err != nil {
		return 0, svcErr.Persistence("failed to count likers", err)
	}

	if err := s.appCtx.RedisCache.SetLikeCount(ctx, actorID, count); err != nil {
		s.appCtx.Logger.Warn("failed to cache like count", "user", actorID, "err", err)
	}
	return count, nil
}
