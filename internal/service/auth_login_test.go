package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
	"github.com/mstanchev/vaxtrack/internal/repo"
	"github.com/mstanchev/vaxtrack/internal/service"
	"github.com/mstanchev/vaxtrack/internal/testutil"
)

func newAuthService(t *testing.T) (*service.AuthService, func()) {
	t.Helper()
	db, cleanup := testutil.OpenTestDB(t)
	return service.NewAuthService(repo.NewUserRepo(db), []byte("test-secret"), time.Hour), cleanup
}

func TestAuthServiceRegisterThenLogin(t *testing.T) {
	auth, cleanup := newAuthService(t)
	defer cleanup()

	user, err := auth.Register(context.Background(), "alice@example.com", "Alice", "hunter2", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	got, err := auth.Login(context.Background(), "alice@example.com", "hunter2")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	name, err := auth.DisplayName(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", name)
}

func TestAuthServiceLoginNoCredentialLeak(t *testing.T) {
	auth, cleanup := newAuthService(t)
	defer cleanup()

	_, err := auth.Register(context.Background(), "alice@example.com", "Alice", "hunter2", "hunter2")
	require.NoError(t, err)

	// Wrong password and unknown email yield the same outcome.
	_, wrongPass := auth.Login(context.Background(), "alice@example.com", "nope")
	_, noSuchUser := auth.Login(context.Background(), "ghost@example.com", "hunter2")
	require.ErrorIs(t, wrongPass, appErr.ErrUnauthorized)
	require.ErrorIs(t, noSuchUser, appErr.ErrUnauthorized)
	require.Equal(t, wrongPass.Error(), noSuchUser.Error())
}

func TestAuthServiceDuplicateEmail(t *testing.T) {
	auth, cleanup := newAuthService(t)
	defer cleanup()

	_, err := auth.Register(context.Background(), "alice@example.com", "Alice", "hunter2", "hunter2")
	require.NoError(t, err)

	_, err = auth.Register(context.Background(), "alice@example.com", "Other", "secret", "secret")
	ve, ok := appErr.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, "Email already exists. Please try another username.", ve.Message)
}

func TestSessionServiceLifecycle(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	auth := service.NewAuthService(repo.NewUserRepo(db), []byte("test-secret"), time.Hour)
	user, err := auth.Register(context.Background(), "alice@example.com", "Alice", "hunter2", "hunter2")
	require.NoError(t, err)

	sessions := service.NewSessionService(repo.NewSessionRepo(db), time.Hour)
	token, err := sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := sessions.Resolve(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)

	require.NoError(t, sessions.Destroy(context.Background(), token))
	_, err = sessions.Resolve(context.Background(), token)
	require.ErrorIs(t, err, appErr.ErrUnauthorized)

	// Destroy is idempotent.
	require.NoError(t, sessions.Destroy(context.Background(), token))
}

func TestSessionServiceExpiry(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	auth := service.NewAuthService(repo.NewUserRepo(db), []byte("test-secret"), time.Hour)
	user, err := auth.Register(context.Background(), "alice@example.com", "Alice", "hunter2", "hunter2")
	require.NoError(t, err)

	// Zero TTL: the session is already expired when resolved.
	sessions := service.NewSessionService(repo.NewSessionRepo(db), 0)
	token, err := sessions.Create(context.Background(), user.ID)
	require.NoError(t, err)

	_, err = sessions.Resolve(context.Background(), token)
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}
