package database_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"wishloop/models"
)

func TestCreateItemRecordsInitialPrice(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")

	it := seedItem(t, db, w, "$49.99")

	history, err := db.Items.PriceHistory(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "$49.99", history[0].Price)

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, models.ClaimNone, got.Claim.Status)
	require.Equal(t, 1, got.Quantity)
}

func TestCreateItemWithoutPriceHasNoHistory(t *testing.T) {
	db := newTestDB(t)
	w := seedWishlist(t, db, "alice")

	it := seedItem(t, db, w, "")

	history, err := db.Items.PriceHistory(context.Background(), it.ID)
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestUpdatePriceAppendsHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "$50.00")

	require.NoError(t, db.Items.UpdatePrice(ctx, it.ID, "$40.00"))

	history, err := db.Items.PriceHistory(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, "$50.00", history[0].Price)
	require.Equal(t, "$40.00", history[1].Price)

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, "$40.00", got.Price)
}

func TestUpdatePriceTrimsHistoryToCap(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "$1.00")

	for i := 0; i < models.PriceHistoryCap+10; i++ {
		require.NoError(t, db.Items.UpdatePrice(ctx, it.ID, fmt.Sprintf("$%d.00", i+2)))
	}

	history, err := db.Items.PriceHistory(ctx, it.ID)
	require.NoError(t, err)
	require.Len(t, history, models.PriceHistoryCap)

	// Oldest entries were dropped; the newest price is the last one written.
	require.Equal(t, fmt.Sprintf("$%d.00", models.PriceHistoryCap+11), history[len(history)-1].Price)
}

func TestUpdatePriceMissingItem(t *testing.T) {
	db := newTestDB(t)
	err := db.Items.UpdatePrice(context.Background(), "no-such-item", "$1.00")
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestClaimOnlyWinsFromUnclaimed(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	ok, err := db.Items.Claim(ctx, it.ID, "bob")
	require.NoError(t, err)
	require.True(t, ok)

	// Second claimer loses the conditional update.
	ok, err = db.Items.Claim(ctx, it.ID, "carol")
	require.NoError(t, err)
	require.False(t, ok)

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.True(t, got.Claim.IsClaimed)
	require.Equal(t, models.ClaimPending, got.Claim.Status)
	require.Equal(t, "bob", *got.Claim.ClaimedBy)
}

func TestUnclaimReopensItem(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	ok, err := db.Items.Claim(ctx, it.ID, "bob")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, db.Items.Unclaim(ctx, it.ID))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.False(t, got.Claim.IsClaimed)
	require.Nil(t, got.Claim.ClaimedBy)
	require.Equal(t, models.ClaimNone, got.Claim.Status)

	// The reopened item is claimable again.
	ok, err = db.Items.Claim(ctx, it.ID, "carol")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestConfirmClaimMarksPurchasedByClaimer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	_, err := db.Items.Claim(ctx, it.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, db.Items.ConfirmClaim(ctx, it.ID, true))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, models.ClaimConfirmed, got.Claim.Status)
	require.True(t, got.Claim.IsPurchased)
	require.Equal(t, "bob", *got.Claim.PurchasedBy)
}

func TestRejectClaimReopensItem(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	_, err := db.Items.Claim(ctx, it.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, db.Items.ConfirmClaim(ctx, it.ID, false))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, models.ClaimRejected, got.Claim.Status)
	require.False(t, got.Claim.IsClaimed)
	require.Nil(t, got.Claim.ClaimedBy)
}

func TestVerifyProofSettlesClaim(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	_, err := db.Items.Claim(ctx, it.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, db.Items.MarkPurchased(ctx, it.ID, "bob", models.PurchaseProof{
		ProofURL:       "uploads/receipt.png",
		TrackingNumber: "1Z999",
	}))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.Equal(t, models.ClaimPurchased, got.Claim.Status)
	require.Equal(t, "uploads/receipt.png", got.Claim.Proof.ProofURL)

	require.NoError(t, db.Items.VerifyProof(ctx, it.ID, "alice", true))

	got, err = db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.True(t, got.Claim.ProofVerified)
	require.False(t, got.Claim.ProofRejected)
	require.Equal(t, models.ClaimConfirmed, got.Claim.Status)
	require.Equal(t, "bob", *got.Claim.PurchasedBy)
	require.Equal(t, "alice", *got.Claim.VerifiedBy)
}

func TestRejectProofLeavesClaimReviewable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	_, err := db.Items.Claim(ctx, it.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, db.Items.MarkPurchased(ctx, it.ID, "bob", models.PurchaseProof{}))
	require.NoError(t, db.Items.VerifyProof(ctx, it.ID, "alice", false))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.True(t, got.Claim.ProofRejected)
	require.False(t, got.Claim.ProofVerified)
	require.Equal(t, models.ClaimPurchased, got.Claim.Status)

	// A rejected proof can still be re-reviewed and accepted.
	require.NoError(t, db.Items.VerifyProof(ctx, it.ID, "alice", true))
	got, err = db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.True(t, got.Claim.ProofVerified)
	require.False(t, got.Claim.ProofRejected)
}

func TestUnpurchaseReopensConfirmedClaim(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	_, err := db.Items.Claim(ctx, it.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, db.Items.ConfirmClaim(ctx, it.ID, true))
	require.NoError(t, db.Items.Unpurchase(ctx, it.ID))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.False(t, got.Claim.IsPurchased)
	require.Nil(t, got.Claim.PurchasedBy)
	require.False(t, got.Claim.IsClaimed)
	require.Nil(t, got.Claim.ClaimedBy)
	require.Equal(t, models.ClaimNone, got.Claim.Status)
}

func TestUnpurchaseLeavesNonConfirmedClaimAlone(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	_, err := db.Items.Claim(ctx, it.ID, "bob")
	require.NoError(t, err)
	require.NoError(t, db.Items.MarkPurchased(ctx, it.ID, "bob", models.PurchaseProof{}))
	require.NoError(t, db.Items.Unpurchase(ctx, it.ID))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.False(t, got.Claim.IsPurchased)
	require.Nil(t, got.Claim.PurchasedBy)
	require.True(t, got.Claim.IsClaimed)
	require.Equal(t, "bob", *got.Claim.ClaimedBy)
	require.Equal(t, models.ClaimPurchased, got.Claim.Status)
}

func TestDirectPurchaseBypassesClaim(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "")

	require.NoError(t, db.Items.Purchase(ctx, it.ID, "bob"))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.True(t, got.Claim.IsPurchased)
	require.Equal(t, "bob", *got.Claim.PurchasedBy)
	require.Equal(t, models.ClaimNone, got.Claim.Status)
}

func TestDeleteItemCascadesHistory(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	w := seedWishlist(t, db, "alice")
	it := seedItem(t, db, w, "$10.00")

	require.NoError(t, db.Items.Delete(ctx, it.ID))

	got, err := db.Items.GetByID(ctx, it.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	history, err := db.Items.PriceHistory(ctx, it.ID)
	require.NoError(t, err)
	require.Empty(t, history)
}
