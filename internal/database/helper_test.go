package database_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"wishloop/internal/database"
	"wishloop/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(t.TempDir(), "wishloop.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedWishlist(t *testing.T, db *database.DB, ownerID string) *models.Wishlist {
	t.Helper()
	w := &models.Wishlist{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		Name:       "birthday",
		Privacy:    models.PrivacyPrivate,
		ShareToken: uuid.NewString(),
	}
	require.NoError(t, db.Wishlists.Create(context.Background(), w))
	return w
}

func seedItem(t *testing.T, db *database.DB, w *models.Wishlist, price string) *models.Item {
	t.Helper()
	it := &models.Item{
		ID:         uuid.NewString(),
		WishlistID: w.ID,
		OwnerID:    w.OwnerID,
		Title:      "mechanical keyboard",
		Price:      price,
	}
	require.NoError(t, db.Items.Create(context.Background(), it))
	return it
}
