package claims_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"wishloop/internal/database"
	"wishloop/models"
	"wishloop/services/claims"
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
		Privacy: models.PrivacyPrivate, ShareToken: uuid.NewString(),
	}
	if err := db.Wishlists.Create(ctx, w); err != nil {
		t.Fatalf("failed to create wishlist: %v", err)
	}
	it := &models.Item{
		ID: uuid.NewString(), WishlistID: w.ID, OwnerID: ownerID, Title: "record player",
	}
	if err := db.Items.Create(ctx, it); err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	return it
}

func TestClaimThenConfirm(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	got, err := svc.Claim(ctx, "bob", it.ID)
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if !got.Claim.IsClaimed || got.Claim.Status != models.ClaimPending {
		t.Fatalf("expected pending claim, got claimed=%t status=%s", got.Claim.IsClaimed, got.Claim.Status)
	}
	if got.Claim.ClaimedBy == nil || *got.Claim.ClaimedBy != "bob" {
		t.Fatalf("expected claimedBy=bob, got %v", got.Claim.ClaimedBy)
	}

	got, err = svc.ConfirmClaim(ctx, "alice", it.ID, true)
	if err != nil {
		t.Fatalf("confirm failed: %v", err)
	}
	if got.Claim.Status != models.ClaimConfirmed {
		t.Fatalf("expected confirmed status, got %s", got.Claim.Status)
	}
	if !got.Claim.IsPurchased || got.Claim.PurchasedBy == nil || *got.Claim.PurchasedBy != "bob" {
		t.Fatalf("expected purchase attributed to claimer, got purchased=%t by=%v", got.Claim.IsPurchased, got.Claim.PurchasedBy)
	}
}

func TestClaimRejectsAlreadyClaimedItem(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	if _, err := svc.Claim(ctx, "bob", it.ID); err != nil {
		t.Fatalf("first claim failed: %v", err)
	}
	_, err := svc.Claim(ctx, "carol", it.ID)
	if !errors.Is(err, models.ErrInvalidState) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

func TestClaimMissingItem(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)

	_, err := svc.Claim(context.Background(), "bob", "no-such-item")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestOwnerMayClaimOwnItem(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	got, err := svc.Claim(ctx, "alice", it.ID)
	if err != nil {
		t.Fatalf("self claim failed: %v", err)
	}
	if got.Claim.ClaimedBy == nil || *got.Claim.ClaimedBy != "alice" {
		t.Fatalf("expected owner to hold the claim, got %v", got.Claim.ClaimedBy)
	}
}

func TestConfirmClaimOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	if _, err := svc.Claim(ctx, "bob", it.ID); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	_, err := svc.ConfirmClaim(ctx, "bob", it.ID, true)
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestMarkPurchasedClaimerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	if _, err := svc.Claim(ctx, "bob", it.ID); err != nil {
		t.Fatalf("claim failed: %v", err)
	}

	_, err := svc.MarkPurchased(ctx, "carol", it.ID, models.PurchaseProof{})
	if !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	got, err := svc.MarkPurchased(ctx, "bob", it.ID, models.PurchaseProof{ProofURL: "uploads/receipt.png"})
	if err != nil {
		t.Fatalf("mark purchased failed: %v", err)
	}
	if got.Claim.Status != models.ClaimPurchased || got.Claim.Proof.ProofURL != "uploads/receipt.png" {
		t.Fatalf("expected purchased with proof, got status=%s proof=%q", got.Claim.Status, got.Claim.Proof.ProofURL)
	}
}

func TestVerifyProofByModerator(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	if _, err := svc.Claim(ctx, "bob", it.ID); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := svc.MarkPurchased(ctx, "bob", it.ID, models.PurchaseProof{}); err != nil {
		t.Fatalf("mark purchased failed: %v", err)
	}

	// A bystander cannot verify.
	if _, err := svc.VerifyProof(ctx, "carol", it.ID, true); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	mod := &models.Friendship{
		ID: uuid.NewString(), UserID: "mod", FriendID: "alice",
		Type: models.RelationshipModerator, Status: models.FriendshipAccepted,
	}
	if err := db.Friendships.Create(ctx, mod); err != nil {
		t.Fatalf("failed to create moderator edge: %v", err)
	}

	got, err := svc.VerifyProof(ctx, "mod", it.ID, true)
	if err != nil {
		t.Fatalf("moderator verify failed: %v", err)
	}
	if !got.Claim.ProofVerified || got.Claim.Status != models.ClaimConfirmed {
		t.Fatalf("expected verified confirmed claim, got verified=%t status=%s", got.Claim.ProofVerified, got.Claim.Status)
	}
}

func TestUnpurchaseOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	if _, err := svc.Claim(ctx, "bob", it.ID); err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if _, err := svc.ConfirmClaim(ctx, "alice", it.ID, true); err != nil {
		t.Fatalf("confirm failed: %v", err)
	}

	if _, err := svc.Unpurchase(ctx, "bob", it.ID); !errors.Is(err, models.ErrUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	got, err := svc.Unpurchase(ctx, "alice", it.ID)
	if err != nil {
		t.Fatalf("unpurchase failed: %v", err)
	}
	if got.Claim.IsPurchased || got.Claim.IsClaimed || got.Claim.Status != models.ClaimNone {
		t.Fatalf("expected fully reopened item, got purchased=%t claimed=%t status=%s",
			got.Claim.IsPurchased, got.Claim.IsClaimed, got.Claim.Status)
	}
}

func TestDirectPurchase(t *testing.T) {
	db := newTestDB(t)
	svc := claims.NewService(db)
	ctx := context.Background()
	it := seedItem(t, db, "alice")

	got, err := svc.Purchase(ctx, "bob", it.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if !got.Claim.IsPurchased || got.Claim.PurchasedBy == nil || *got.Claim.PurchasedBy != "bob" {
		t.Fatalf("expected direct purchase by bob, got purchased=%t by=%v", got.Claim.IsPurchased, got.Claim.PurchasedBy)
	}
	if got.Claim.Status != models.ClaimNone {
		t.Fatalf("expected claim pipeline untouched, got status=%s", got.Claim.Status)
	}
}
