package account

import (
	"context"
	"errors"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/sparkmatch/sparkmatch/internal/app"
	"github.com/sparkmatch/sparkmatch/internal/auth"
	"github.com/sparkmatch/sparkmatch/internal/db"
	svcErr "github.com/sparkmatch/sparkmatch/internal/errors"
	"github.com/sparkmatch/sparkmatch/internal/repository"
)

// Service implements signup, login and profile management.
type Service struct {
	appCtx   *app.AppContext
	userRepo *repository.UserRepository
}

// NewService creates an account service with dependencies from AppContext.
func NewService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		userRepo: repository.NewUserRepository(appCtx.DB),
	}
}

// SignupInput is the payload required to create an account.
type SignupInput struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FullName  string `json:"full_name"`
	Gender    string `json:"gender" binding:"required"`
	Birthdate string `json:"birthdate"`
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	Token string   `json:"token"`
	User  *db.User `json:"user"`
}

// Signup creates a user with a hashed password and issues a token.
func (s *Service) Signup(ctx context.Context, in SignupInput) (*AuthResult, error) {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, svcErr.Persistence("failed to hash password", err)
	}

	user := &db.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: hash,
		FullName:     in.FullName,
		Gender:       in.Gender,
		Birthdate:    in.Birthdate,
		Preferences:  datatypes.NewJSONType(defaultPreferences()),
		Lifestyle:    datatypes.NewJSONType(defaultLifestyle()),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, svcErr.Conflict("email or username already taken")
		}
		return nil, svcErr.Persistence("failed to create user", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.appCtx.Cfg)
	if err != nil {
		return nil, svcErr.Persistence("failed to issue token", err)
	}

	s.appCtx.Logger.Info("user signed up", "user", user.ID, "username", user.Username)
	return &AuthResult{Token: token, User: user}, nil
}

// LoginInput is the payload for password login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and issues a token. Wrong email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.Unauthenticated("invalid email or password")
		}
		return nil, svcErr.Persistence("failed to load user", err)
	}

	if !auth.CheckPasswordHash(in.Password, user.PasswordHash) {
		return nil, svcErr.Unauthenticated("invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, user.Username, s.appCtx.Cfg)
	if err != nil {
		return nil, svcErr.Persistence("failed to issue token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// CurrentProfile fetches the actor's own profile. Unset structured
// sub-objects come back filled with defaults so the client always sees a
// complete shape.
func (s *Service) CurrentProfile(ctx context.Context, actorID string) (*db.User, error) {
	if actorID == "" {
		return nil, svcErr.Unauthenticated("no authenticated user")
	}

	user, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.Unauthenticated("authenticated user no longer exists")
		}
		return nil, svcErr.Persistence("failed to load profile", err)
	}

	applyProfileDefaults(user)
	return user, nil
}

// GetUser fetches a public profile by id.
func (s *Service) GetUser(ctx context.Context, id string) (*db.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, svcErr.NotFound("user not found")
		}
		return nil, svcErr.Persistence("failed to load user", err)
	}
	applyProfileDefaults(user)
	return user, nil
}

// UpdateInput carries a partial profile update. Only non-nil fields are
// written.
type UpdateInput struct {
	FullName          *string         `json:"full_name"`
	Username          *string         `json:"username"`
	Bio               *string         `json:"bio"`
	Gender            *string         `json:"gender"`
	Birthdate         *string         `json:"birthdate"`
	AvatarURL         *string         `json:"avatar_url"`
	Location          *string         `json:"location"`
	Occupation        *string         `json:"occupation"`
	Education         *string         `json:"education"`
	Height            *int            `json:"height"`
	Photos            *[]string       `json:"photos"`
	Interests         *[]string       `json:"interests"`
	Languages         *[]string       `json:"languages"`
	Lifestyle         *db.Lifestyle   `json:"lifestyle"`
	Prompts           *[]db.Prompt    `json:"prompts"`
	Preferences       *db.Preferences `json:"preferences"`
	Instagram         *string         `json:"instagram"`
	Spotify           *string         `json:"spotify"`
	RelationshipGoals *string         `json:"relationship_goals"`
}

// UpdateProfile applies a partial update to the actor's own row.
func (s *Service) UpdateProfile(ctx context.Context, actorID string, in UpdateInput) (*db.User, error) {
	if actorID == "" {
		return nil, svcErr.Unauthenticated("no authenticated user")
	}

	fields := map[string]any{}
	setString := func(col string, v *string) {
		if v != nil {
			fields[col] = *v
		}
	}
	setString("full_name", in.FullName)
	setString("username", in.Username)
	setString("bio", in.Bio)
	setString("gender", in.Gender)
	setString("birthdate", in.Birthdate)
	setString("avatar_url", in.AvatarURL)
	setString("location", in.Location)
	setString("occupation", in.Occupation)
	setString("education", in.Education)
	setString("instagram", in.Instagram)
	setString("spotify", in.Spotify)
	setString("relationship_goals", in.RelationshipGoals)

	if in.Height != nil {
		fields["height"] = *in.Height
	}
	if in.Photos != nil {
		fields["photos"] = datatypes.NewJSONSlice(*in.Photos)
	}
	if in.Interests != nil {
		fields["interests"] = datatypes.NewJSONSlice(*in.Interests)
	}
	if in.Languages != nil {
		fields["languages"] = datatypes.NewJSONSlice(*in.Languages)
	}
	if in.Lifestyle != nil {
		fields["lifestyle"] = datatypes.NewJSONType(*in.Lifestyle)
	}
	if in.Prompts != nil {
		fields["prompts"] = datatypes.NewJSONSlice(*in.Prompts)
	}
	if in.Preferences != nil {
		fields["preferences"] = datatypes.NewJSONType(*in.Preferences)
	}

	if err := s.userRepo.UpdateFields(ctx, actorID, fields); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, svcErr.Conflict("username already taken")
		}
		return nil, svcErr.Persistence("failed to update profile", err)
	}

	return s.CurrentProfile(ctx, actorID)
}

func defaultPreferences() db.Preferences {
	return db.Preferences{
		AgeRange:         db.AgeRange{Min: 25, Max: 35},
		Distance:         50,
		GenderPreference: []string{},
		Dealbreakers:     []string{},
	}
}

func defaultLifestyle() db.Lifestyle {
	return db.Lifestyle{
		Smoking:  "Never",
		Drinking: "Socially",
		Exercise: "Active",
		Pets:     "Dog lover",
	}
}

func applyProfileDefaults(user *db.User) {
	if user.Photos == nil {
		user.Photos = datatypes.NewJSONSlice([]string{})
	}
	if user.Interests == nil {
		user.Interests = datatypes.NewJSONSlice([]string{})
	}
	if user.Languages == nil {
		user.Languages = datatypes.NewJSONSlice([]string{})
	}
	if user.Prompts == nil {
		user.Prompts = datatypes.NewJSONSlice([]db.Prompt{})
	}
	p := user.Preferences.Data()
	if p.AgeRange == (db.AgeRange{}) && p.Distance == 0 && p.GenderPreference == nil && p.Dealbreakers == nil {
		user.Preferences = datatypes.NewJSONType(defaultPreferences())
	}
	if user.Lifestyle.Data() == (db.Lifestyle{}) {
		user.Lifestyle = datatypes.NewJSONType(defaultLifestyle())
	}
}
