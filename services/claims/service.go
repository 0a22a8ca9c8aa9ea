package claims

import (
	"context"
	"fmt"
	"log"

	"wishloop/internal/database"
	"wishloop/internal/metrics"
	"wishloop/models"
)

// Service drives the claim/purchase state machine:
//
//	none -> pending -> confirmed | rejected | purchased
//	purchased -> proof verified (settles as confirmed) | proof rejected (claim untouched)
//
// plus the direct-purchase shortcut and the unclaim/unpurchase resets.
// Ownership and moderator guards live here; the store enforces the
// state-conditional writes.
type Service struct {
	db *database.DB
}

// NewService creates a new claim service.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

func (s *Service) item(ctx context.Context, itemID string) (*models.Item, error) {
	it, err := s.db.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("%w: item %s", models.ErrNotFound, itemID)
	}
	return it, nil
}

// Claim puts a pending claim on an unclaimed item for the acting user. Any
// authenticated user may claim, including the item's owner (self-gifting is
// deliberately not guarded against). The conditional write means exactly one
// of two concurrent claimers wins.
func (s *Service) Claim(ctx context.Context, actorID, itemID string) (*models.Item, error) {
	if _, err := s.item(ctx, itemID); err != nil {
		return nil, err
	}

	ok, err := s.db.Items.Claim(ctx, itemID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: item is already claimed", models.ErrInvalidState)
	}

	metrics.ClaimTransitions.WithLabelValues("claim").Inc()
	log.Printf("[claims] item %s claimed by %s", itemID, actorID)
	return s.item(ctx, itemID)
}

// Unclaim resets an item's claim regardless of its current state. Permission
// is the caller's responsibility; this layer applies no check, matching the
// rest of the claim pipeline's division of guards.
func (s *Service) Unclaim(ctx context.Context, itemID string) (*models.Item, error) {
	if _, err := s.item(ctx, itemID); err != nil {
		return nil, err
	}
	if err := s.db.Items.Unclaim(ctx, itemID); err != nil {
		return nil, err
	}
	metrics.ClaimTransitions.WithLabelValues("unclaim").Inc()
	return s.item(ctx, itemID)
}

// ConfirmClaim records the owner's verdict on a claim. Confirming attests
// the purchase happened without proof: the item becomes purchased by the
// claimer. Rejecting reopens the item.
func (s *Service) ConfirmClaim(ctx context.Context, actorID, itemID string, confirm bool) (*models.Item, error) {
	it, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the item owner can confirm or reject a claim", models.ErrUnauthorized)
	}

	if err := s.db.Items.ConfirmClaim(ctx, itemID, confirm); err != nil {
		return nil, err
	}

	action := "confirm"
	if !confirm {
		action = "reject"
	}
	metrics.ClaimTransitions.WithLabelValues(action).Inc()
	log.Printf("[claims] item %s claim %sed by owner %s", itemID, action, actorID)
	return s.item(ctx, itemID)
}

// MarkPurchased lets the claimer attach proof of purchase, moving the claim
// to the purchased state awaiting verification.
func (s *Service) MarkPurchased(ctx context.Context, actorID, itemID string, proof models.PurchaseProof) (*models.Item, error) {
	it, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.Claim.ClaimedBy == nil || *it.Claim.ClaimedBy != actorID {
		return nil, fmt.Errorf("%w: only the claimer can mark an item purchased", models.ErrUnauthorized)
	}

	if err := s.db.Items.MarkPurchased(ctx, itemID, actorID, proof); err != nil {
		return nil, err
	}
	metrics.ClaimTransitions.WithLabelValues("purchase_with_proof").Inc()
	log.Printf("[claims] item %s marked purchased by claimer %s", itemID, actorID)
	return s.item(ctx, itemID)
}

// VerifyProof records a verdict on submitted proof. The verifier must be the
// item's owner or hold moderator standing for the owner. Accepting settles
// the claim as confirmed; rejecting flags the proof and leaves the claim
// re-reviewable.
func (s *Service) VerifyProof(ctx context.Context, actorID, itemID string, verified bool) (*models.Item, error) {
	it, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		moderator, merr := s.db.Friendships.IsModeratorFor(ctx, it.OwnerID, actorID)
		if merr != nil {
			return nil, merr
		}
		if !moderator {
			return nil, fmt.Errorf("%w: only the owner or a moderator can verify proof", models.ErrUnauthorized)
		}
	}

	if err := s.db.Items.VerifyProof(ctx, itemID, actorID, verified); err != nil {
		return nil, err
	}

	action := "verify_proof"
	if !verified {
		action = "reject_proof"
	}
	metrics.ClaimTransitions.WithLabelValues(action).Inc()
	log.Printf("[claims] item %s proof %s by %s", itemID, action, actorID)
	return s.item(ctx, itemID)
}

// Unpurchase clears the purchase fields; a confirmed claim is fully
// reopened, any other claim state is left as-is. Owner only.
func (s *Service) Unpurchase(ctx context.Context, actorID, itemID string) (*models.Item, error) {
	it, err := s.item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the item owner can undo a purchase", models.ErrUnauthorized)
	}

	if err := s.db.Items.Unpurchase(ctx, itemID); err != nil {
		return nil, err
	}
	metrics.ClaimTransitions.WithLabelValues("unpurchase").Inc()
	return s.item(ctx, itemID)
}

// Purchase marks an item purchased directly, bypassing the claim pipeline.
// It coexists with the claim-based path as the simpler alternative.
func (s *Service) Purchase(ctx context.Context, actorID, itemID string) (*models.Item, error) {
	if _, err := s.item(ctx, itemID); err != nil {
		return nil, err
	}
	if err := s.db.Items.Purchase(ctx, itemID, actorID); err != nil {
		return nil, err
	}
	metrics.ClaimTransitions.WithLabelValues("direct_purchase").Inc()
	log.Printf("[claims] item %s purchased directly by %s", itemID, actorID)
	return s.item(ctx, itemID)
}
