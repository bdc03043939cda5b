package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mstanchev/vaxtrack/internal/model"
	appErr "github.com/mstanchev/vaxtrack/internal/pkg/errors"
	"github.com/mstanchev/vaxtrack/internal/repo"
	"github.com/mstanchev/vaxtrack/internal/testutil"
)

func TestUserRepoCreateAndGet(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	user := &model.User{
		ID:           "user-1",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Name:         "Alice",
		Ctime:        100,
	}
	require.NoError(t, users.Create(context.Background(), user))

	byEmail, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", byEmail.ID)
	require.Equal(t, "Alice", byEmail.Name)

	byID, err := users.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", byID.Email)

	_, err = users.GetByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, appErr.ErrNotFound)
}

func TestUserRepoDuplicateEmail(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	users := repo.NewUserRepo(db)
	first := &model.User{ID: "user-1", Email: "dup@example.com", PasswordHash: "h1", Name: "First"}
	require.NoError(t, users.Create(context.Background(), first))

	second := &model.User{ID: "user-2", Email: "dup@example.com", PasswordHash: "h2", Name: "Second"}
	err := users.Create(context.Background(), second)
	require.ErrorIs(t, err, appErr.ErrConflict)

	// The failed insert must not leave a second row behind.
	got, err := users.GetByEmail(context.Background(), "dup@example.com")
	require.NoError(t, err)
	require.Equal(t, "user-1", got.ID)
}
