package media

import (
	"context"
	"errors"
	"io"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/app"
	"github.com/sparkmatch/sparkmatch/internal/db"
	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
	"github.com/sparkmatch/sparkmatch/internal/repository"
	"github.com/sparkmatch/sparkmatch/internal/storage"
)

// Service implements photo and reel uploads on top of a MediaStore.
type Service struct {
	appCtx   *app.AppContext
	store    storage.MediaStore
	userRepo *repository.UserRepository
	reelRepo *repository.ReelRepository
}

// NewService creates a media service with dependencies from AppContext.
func NewService(appCtx *app.AppContext, store storage.MediaStore) *Service {
	return &Service{
		appCtx:   appCtx,
		store:    store,
		userRepo: repository.NewUserRepository(appCtx.DB),
		reelRepo: repository.NewReelRepository(appCtx.DB),
	}
}

// Upload describes one incoming multipart file.
type Upload struct {
	Reader   io.Reader
	Size     int64
	FileName string
	MimeType string
}

// UploadPhoto stores an image and appends its URL to the actor's photos.
func (s *Service) UploadPhoto(ctx context.Context, actorID string, up Upload) (string, error) {
	if actorID == "" {
		return "", svcErr.Unauthenticated("no authenticated user")
	}
	if err := s.validate(up, "image/", s.appCtx.Cfg.Storage.MaxPhotoBytes); err != nil {
		return "", err
	}

	info, err := s.store.Upload(ctx, up.Reader, up.Size, up.FileName, up.MimeType)
	if err != nil {
		return "", svcErr.Persistence("failed to store photo", err)
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return "", svcErr.Persistence("failed to load profile", err)
	}

	photos := append([]string(user.Photos), info.URL)
	err = s.userRepo.UpdateFields(ctx, actorID, map[string]any{
		"photos": datatypes.NewJSONSlice(photos),
	})
	if err != nil {
		return "", svcErr.Persistence("failed to save photo list", err)
	}

	s.appCtx.Logger.Info("photo uploaded", "user", actorID, "url", info.URL)
	return info.URL, nil
}

// UploadAvatar stores an image and sets it as the actor's avatar.
func (s *Service) UploadAvatar(ctx context.Context, actorID string, up Upload) (string, error) {
	if actorID == "" {
		return "", svcErr.Unauthenticated("no authenticated user")
	}
	if err := s.validate(up, "image/", s.appCtx.Cfg.Storage.MaxPhotoBytes); err != nil {
		return "", err
	}

	info, err := s.store.Upload(ctx, up.Reader, up.Size, up.FileName, up.MimeType)
	if err != nil {
		return "", svcErr.Persistence("failed to store avatar", err)
	}

	err = s.userRepo.UpdateFields(ctx, actorID, map[string]any{"avatar_url": info.URL})
	if err != nil {
		return "", svcErr.Persistence("failed to save avatar", err)
	}
	return info.URL, nil
}

// UploadReel stores a short video (plus optional thumbnail) and records a
// reel row for the actor.
func (s *Service) UploadReel(ctx context.Context, actorID string, video Upload, thumbnail *Upload, caption string) (*db.Reel, error) {
	if actorID == "" {
		return nil, svcErr.Unauthenticated("no authenticated user")
	}
	if err := s.validate(video, "video/", s.appCtx.Cfg.Storage.MaxReelBytes); err != nil {
		return nil, err
	}

	videoInfo, err := s.store.Upload(ctx, video.Reader, video.Size, video.FileName, video.MimeType)
	if err != nil {
		return nil, svcErr.Persistence("failed to store reel", err)
	}

	thumbURL := ""
	if thumbnail != nil {
		if err := s.validate(*thumbnail, "image/", s.appCtx.Cfg.Storage.MaxPhotoBytes); err != nil {
			return nil, err
		}
		thumbInfo, err := s.store.Upload(ctx, thumbnail.Reader, thumbnail.Size, thumbnail.FileName, thumbnail.MimeType)
		if err != nil {
			return nil, svcErr.Persistence("failed to store thumbnail", err)
		}
		thumbURL = thumbInfo.URL
	}

	reel := &db.Reel{
		UserID:       actorID,
		VideoURL:     videoInfo.URL,
		ThumbnailURL: thumbURL,
		Caption:      caption,
	}
	if err := s.reelRepo.Create(ctx, reel); err != nil {
		return nil, svcErr.Persistence("failed to save reel", err)
	}

	s.appCtx.Logger.Info("reel uploaded", "user", actorID, "reel", reel.ID)
	return reel, nil
}

// ListReels returns the actor's reels, newest first.
func (s *Service) ListReels(ctx context.Context, actorID string) ([]db.Reel, error) {
	if actorID == "" {
		return nil, svcErr.Unauthenticated("no authenticated user")
	}
	reels, err := s.reelRepo.ListByUser(ctx, actorID)
	if err != nil {
		return nil, svcErr.Persistence("failed to list reels", err)
	}
	return reels, nil
}

// DeletePhoto removes a URL from the actor's photo list and deletes the
// stored object. Only URLs the actor actually owns are accepted.
func (s *Service) DeletePhoto(ctx context.Context, actorID, photoURL string) error {
	if actorID == "" {
		return svcErr.Unauthenticated("no authenticated user")
	}
	if photoURL == "" {
		return svcErr.InvalidArgument("photo url is required")
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return svcErr.Unauthenticated("authenticated user no longer exists")
		}
		return svcErr.Persistence("failed to load profile", err)
	}

	photos := []string(user.Photos)
	kept := photos[:0]
	found := false
	for _, p := range photos {
		if p == photoURL {
			found = true
			continue
		}
		kept = append(kept, p)
	}
	if !found {
		return svcErr.NotFound("photo not found on profile")
	}

	err = s.userRepo.UpdateFields(ctx, actorID, map[string]any{
		"photos": datatypes.NewJSONSlice(append([]string{}, kept...)),
	})
	if err != nil {
		return svcErr.Persistence("failed to save photo list", err)
	}

	// object deletion is best-effort: the profile no longer references it
	if err := s.store.Delete(ctx, photoURL); err != nil {
		s.appCtx.Logger.Warn("failed to delete stored object", "url", photoURL, "err", err)
	}
	return nil
}

func (s *Service) validate(up Upload, mimePrefix string, maxBytes int64) error {
	if up.Reader == nil {
		return svcErr.InvalidArgument("file is required")
	}
	if up.Size > maxBytes {
		return svcErr.InvalidArgument("file is too large")
	}
	if up.MimeType != "" && !strings.HasPrefix(up.MimeType, mimePrefix) {
		return svcErr.InvalidArgument("unsupported file type")
	}
	return nil
}
