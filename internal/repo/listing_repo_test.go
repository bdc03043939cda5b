package repo_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mstanchev/vaxtrack/internal/model"
	"github.com/mstanchev/vaxtrack/internal/repo"
	"github.com/mstanchev/vaxtrack/internal/testutil"
)

func seedUser(t *testing.T, db *sql.DB, id, email, name string) {
	t.Helper()
	users := repo.NewUserRepo(db)
	require.NoError(t, users.Create(context.Background(), &model.User{
		ID:           id,
		Email:        email,
		PasswordHash: "hash",
		Name:         name,
	}))
}

func seedListings(t *testing.T, db *sql.DB) *repo.ListingRepo {
	t.Helper()
	seedUser(t, db, "user-1", "alice@example.com", "Alice")
	seedUser(t, db, "user-2", "bob@example.com", "Bob")

	listings := repo.NewListingRepo(db)
	require.NoError(t, listings.Create(context.Background(), &model.Listing{
		ID: "v-1", Quantity: 100, Origin: "Boston", Destination: "NY", VaccineType: "Pfizer", UserID: "user-1", Ctime: 1,
	}))
	require.NoError(t, listings.Create(context.Background(), &model.Listing{
		ID: "v-2", Quantity: 50, Origin: "LA", Destination: "SF", VaccineType: "Moderna", UserID: "user-2", Ctime: 2,
	}))
	return listings
}

func TestListingRepoListAll(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	listings := seedListings(t, db)

	all, err := listings.ListAll(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Alice", all[0].OwnerName)
	require.Equal(t, "Bob", all[1].OwnerName)

	// Repeated identical queries come back in the same order.
	again, err := listings.ListAll(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, all, again)
}

func TestListingRepoSearch(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	listings := seedListings(t, db)

	matched, err := listings.ListAll(context.Background(), "Pfizer")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "v-1", matched[0].ID)

	// Substring and case-insensitive.
	matched, err = listings.ListAll(context.Background(), "pfiz")
	require.NoError(t, err)
	require.Len(t, matched, 1)

	// Owner display name matches on the public gallery.
	matched, err = listings.ListAll(context.Background(), "bob")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	require.Equal(t, "v-2", matched[0].ID)

	none, err := listings.ListAll(context.Background(), "zz")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestListingRepoListByOwner(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()
	listings := seedListings(t, db)

	mine, err := listings.ListByOwner(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "v-1", mine[0].ID)

	// Scoped search never crosses owners.
	crossed, err := listings.ListByOwner(context.Background(), "user-1", "Moderna")
	require.NoError(t, err)
	require.Empty(t, crossed)

	// Owner-name matching is excluded from the scoped view.
	byName, err := listings.ListByOwner(context.Background(), "user-1", "Alice")
	require.NoError(t, err)
	require.Empty(t, byName)
}
