package comments_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"wishloop/internal/database"
	"wishloop/models"
	"wishloop/services/comments"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(t.TempDir(), "wishloop.db")})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedItem(t *testing.T, db *database.DB, ownerID string) *models.Item {
	t.Helper()
	ctx := context.Background()
	w := &models.Wishlist{
		ID: uuid.NewString(), OwnerID: ownerID, Name: "gifts",
		Privacy: models.PrivacyPublic, ShareToken: uuid.NewString(),
	}
	if err := db.Wishlists.Create(ctx, w); err != nil {
		t.Fatalf("failed to create wishlist: %v", err)
	}
	it := &models.Item{ID: uuid.NewString(), WishlistID: w.ID, OwnerID: ownerID, Title: "book"}
	if err := db.Items.Create(ctx, it); err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	return it
}

func TestAddAndListComments(t *testing.T) {
	db := newTestDB(t)
	svc := comments.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	if _, err := svc.AddComment(ctx, "bob", it.ID, ""); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected empty body rejection, got %v", err)
	}
	if _, err := svc.AddComment(ctx, "bob", "no-such-item", "hi"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	c, err := svc.AddComment(ctx, "bob", it.ID, "great pick!")
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}

	list, err := svc.ListComments(ctx, it.ID)
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != c.ID || list[0].Body != "great pick!" {
		t.Fatalf("unexpected comment list: %+v", list)
	}
}

func TestDeleteCommentAuthorOrItemOwner(t *testing.T) {
	db := newTestDB(t)
	svc := comments.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	c, err := svc.AddComment(ctx, "bob", it.ID, "first")
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}

	if err := svc.DeleteComment(ctx, "carol", c.ID); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized delete, got %v", err)
	}

	// The item owner can moderate comments they did not write.
	if err := svc.DeleteComment(ctx, "alice", c.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	c, err = svc.AddComment(ctx, "bob", it.ID, "second")
	if err != nil {
		t.Fatalf("add comment failed: %v", err)
	}
	if err := svc.DeleteComment(ctx, "bob", c.ID); err != nil {
		t.Fatalf("author delete failed: %v", err)
	}
}

func TestToggleReaction(t *testing.T) {
	db := newTestDB(t)
	svc := comments.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	if _, err := svc.ToggleReaction(ctx, "bob", it.ID, ""); !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected empty emoji rejection, got %v", err)
	}

	active, err := svc.ToggleReaction(ctx, "bob", it.ID, "🎉")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !active {
		t.Fatalf("first toggle should add the reaction")
	}

	list, err := svc.ListReactions(ctx, it.ID)
	if err != nil {
		t.Fatalf("list reactions failed: %v", err)
	}
	if len(list) != 1 || list[0].Emoji != "🎉" || list[0].UserID != "bob" {
		t.Fatalf("unexpected reactions: %+v", list)
	}

	active, err = svc.ToggleReaction(ctx, "bob", it.ID, "🎉")
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if active {
		t.Fatalf("second toggle should remove the reaction")
	}

	list, err = svc.ListReactions(ctx, it.ID)
	if err != nil {
		t.Fatalf("list reactions failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no reactions after second toggle, got %d", len(list))
	}
}
