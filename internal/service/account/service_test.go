package account_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/app"
	"github.com/sparkmatch/sparkmatch/internal/auth"
	"github.com/sparkmatch/sparkmatch/internal/cache"
	"github.com/sparkmatch/sparkmatch/internal/config"
	"github.com/sparkmatch/sparkmatch/internal/db"
	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
	"github.com/sparkmatch/sparkmatch/internal/service/account"
)

func setupService(t *testing.T) (*account.Service, *config.Config) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	dbase, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc:                func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := dbase.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(dbase))
	require.NoError(t, db.SeedMinimalTestData(dbase))

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	cfg := config.New()
	cfg.Redis.Addr = mr.Addr()

	redisCache := cache.NewRedisCache(cfg)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	appCtx := app.New(cfg, dbase, redisCache, logger)
	return account.NewService(appCtx), cfg
}

func TestSignupIssuesValidToken(t *testing.T) {
	ctx := context.Background()
	svc, cfg := setupService(t)

	result, err := svc.Signup(ctx, account.SignupInput{
		Email:    "eve@test.com",
		Username: "eve",
		Password: "supersecret",
		FullName: "Eve",
		Gender:   "female",
	})
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.NotEmpty(t, result.User.ID)

	claims, err := auth.ValidateToken(result.Token, cfg.Auth.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "eve", claims.Username)
}

func TestSignupDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Signup(ctx, account.SignupInput{
		Email:    "alice@test.com",
		Username: "alice2",
		Password: "supersecret",
		Gender:   "female",
	})
	var de *svcErr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, svcErr.KindConflict, de.Kind)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.Signup(ctx, account.SignupInput{
		Email:    "eve@test.com",
		Username: "eve",
		Password: "supersecret",
		Gender:   "female",
	})
	require.NoError(t, err)

	result, err := svc.Login(ctx, account.LoginInput{Email: "eve@test.com", Password: "supersecret"})
	require.NoError(t, err)
	assert.Equal(t, "eve", result.User.Username)

	// wrong password and unknown email fail identically
	_, err = svc.Login(ctx, account.LoginInput{Email: "eve@test.com", Password: "wrong"})
	var de *svcErr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, svcErr.KindUnauthenticated, de.Kind)

	_, err = svc.Login(ctx, account.LoginInput{Email: "ghost@test.com", Password: "supersecret"})
	require.ErrorAs(t, err, &de)
	assert.Equal(t, svcErr.KindUnauthenticated, de.Kind)
}

func TestCurrentProfileFillsDefaults(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	// dave was seeded without preferences or lifestyle
	user, err := svc.CurrentProfile(ctx, "dave")
	require.NoError(t, err)

	prefs := user.Preferences.Data()
	assert.Equal(t, 25, prefs.AgeRange.Min)
	assert.Equal(t, 35, prefs.AgeRange.Max)
	assert.Equal(t, 50, prefs.Distance)
	assert.Empty(t, prefs.GenderPreference)

	assert.Equal(t, "Socially", user.Lifestyle.Data().Drinking)
	assert.NotNil(t, user.Photos)
}

func TestUpdateProfilePartial(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	bio := "new bio"
	height := 180
	prefs := db.Preferences{
		AgeRange:         db.AgeRange{Min: 30, Max: 40},
		Distance:         25,
		GenderPreference: []string{"female"},
	}

	user, err := svc.UpdateProfile(ctx, "bob", account.UpdateInput{
		Bio:         &bio,
		Height:      &height,
		Preferences: &prefs,
	})
	require.NoError(t, err)

	assert.Equal(t, "new bio", user.Bio)
	assert.Equal(t, 180, user.Height)
	assert.Equal(t, []string{"female"}, user.Preferences.Data().GenderPreference)

	// untouched fields survive
	assert.Equal(t, "Bob", user.FullName)
	assert.Equal(t, "bob", user.Username)
}

func TestGetUserNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	_, err := svc.GetUser(ctx, "nobody")
	var de *svcErr.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, svcErr.KindNotFound, de.Kind)
}
