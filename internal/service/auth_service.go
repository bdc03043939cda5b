package service

import (
	"context"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/mstanchev/vaxtrack/internal/model"
	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
	"github.com/mstanchev/vaxtrack/internal/pkg/jwt"
	"github.com/mstanchev/vaxtrack/internal/pkg/password"
	"github.com/mstanchev/vaxtrack/internal/pkg/timeutil"
	"github.com/mstanchev/vaxtrack/internal/repo"
)

const (
	msgMissingEmail     = "Must submit username"
	msgMissingPassword  = "Must submit password"
	msgMissingName      = "Must submit name"
	msgPasswordMismatch = "Passwords do not match"
	msgDuplicateEmail   = "Email already exists. Please try another username."
)

// AuthService is the credential store: registration, login and display
// name lookup over the userinfo table.
type AuthService struct {
	users     *repo.UserRepo
	jwtSecret []byte
	jwtTTL    time.Duration
	nameCache *expirable.LRU[string, string]
}

func NewAuthService(users *repo.UserRepo, jwtSecret []byte, jwtTTL time.Duration) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		jwtTTL:    jwtTTL,
		// Display names are immutable after registration, so a cache
		// can never serve a stale value.
		nameCache: expirable.NewLRU[string, string](4096, nil, time.Hour),
	}
}

// Register validates the form in a fixed order and surfaces only the
// first failing check. Duplicate emails are detected by the storage
// layer's unique constraint, which also closes the concurrent
// registration race.
func (s *AuthService) Register(ctx context.Context, email, name, plainPassword, confirm string) (*model.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, appErr.Validation(msgMissingEmail)
	}
	if plainPassword == "" {
		return nil, appErr.Validation(msgMissingPassword)
	}
	if strings.TrimSpace(name) == "" {
		return nil, appErr.Validation(msgMissingName)
	}
	if plainPassword != confirm {
		return nil, appErr.Validation(msgPasswordMismatch)
	}
	hash, err := password.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	now := timeutil.NowUnix()
	user := &model.User{
		ID:           newID(),
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(name),
		Ctime:        now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsConflict(err) {
			return nil, appErr.Validation(msgDuplicateEmail)
		}
		return nil, err
	}
	return user, nil
}

// Login returns the same generic failure for an unknown email and a
// wrong password; callers cannot tell which part was wrong.
func (s *AuthService) Login(ctx context.Context, email, plainPassword string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, appErr.ErrUnauthorized
	}
	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		return nil, appErr.ErrUnauthorized
	}
	return user, nil
}

// LoginToken is the API variant of Login: same checks, plus an HS256
// bearer token for the JSON surface.
func (s *AuthService) LoginToken(ctx context.Context, email, plainPassword string) (*model.User, string, error) {
	user, err := s.Login(ctx, email, plainPassword)
	if err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// IssueToken mints a bearer token for an already-authenticated user,
// used right after API registration.
func (s *AuthService) IssueToken(user *model.User) (string, error) {
	return jwt.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtTTL)
}

func (s *AuthService) DisplayName(ctx context.Context, userID string) (string, error) {
	if name, ok := s.nameCache.Get(userID); ok {
		return name, nil
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	s.nameCache.Add(userID, user.Name)
	return user.Name, nil
}
