package items

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"wishloop/internal/database"
	"wishloop/models"
	"wishloop/services/alerts"
	"wishloop/services/wishlists"
)

// Service manages items within wishlists. Price updates feed the alert
// evaluator as a side effect.
type Service struct {
	db        *database.DB
	evaluator *alerts.Evaluator
}

// NewService creates a new item service.
func NewService(db *database.DB, evaluator *alerts.Evaluator) *Service {
	return &Service{db: db, evaluator: evaluator}
}

// attachParsedPrice derives the structured price from the free-text string.
// A price that does not parse leaves the structured form unset, matching the
// skip behavior of the alert evaluator.
func attachParsedPrice(it *models.Item) {
	if it.Price == "" {
		return
	}
	if p, err := models.ParsePrice(it.Price); err == nil {
		it.ParsedPrice = &p
	}
}

// Create adds an item to a wishlist. Only the wishlist owner may add items.
func (s *Service) Create(ctx context.Context, actorID, wishlistID string, in models.ItemUpsert) (*models.Item, error) {
	if in.Title == "" {
		return nil, fmt.Errorf("%w: item title is required", models.ErrInvalidState)
	}

	w, err := s.db.Wishlists.GetByID(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: wishlist %s", models.ErrNotFound, wishlistID)
	}
	if w.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the wishlist owner can add items", models.ErrUnauthorized)
	}

	it := &models.Item{
		ID:           uuid.NewString(),
		WishlistID:   wishlistID,
		OwnerID:      actorID,
		Title:        in.Title,
		SourceURL:    in.SourceURL,
		AffiliateURL: in.AffiliateURL,
		ImageURL:     in.ImageURL,
		Price:        in.Price,
		Description:  in.Description,
		Notes:        in.Notes,
		Size:         in.Size,
		Priority:     in.Priority,
		Quantity:     in.Quantity,
		Claim:        models.Claim{Status: models.ClaimNone},
	}
	if err := s.db.Items.Create(ctx, it); err != nil {
		return nil, err
	}

	attachParsedPrice(it)
	log.Printf("[items] created item id=%s wishlist=%s title=%q", it.ID, wishlistID, it.Title)
	return it, nil
}

// Get returns an item with its price history attached. Visibility follows
// the owning wishlist's privacy gate.
func (s *Service) Get(ctx context.Context, itemID, viewerID string, authenticated bool) (*models.Item, error) {
	it, err := s.db.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("%w: item %s", models.ErrNotFound, itemID)
	}

	w, err := s.db.Wishlists.GetByID(ctx, it.WishlistID)
	if err != nil {
		return nil, err
	}
	if !wishlists.CanView(w, viewerID, authenticated) {
		return nil, fmt.Errorf("%w: item is not visible to this viewer", models.ErrUnauthorized)
	}

	history, err := s.db.Items.PriceHistory(ctx, itemID)
	if err != nil {
		return nil, err
	}
	it.PriceHistory = history
	attachParsedPrice(it)
	return it, nil
}

// List returns the items of a wishlist, gated by the wishlist's privacy tier.
func (s *Service) List(ctx context.Context, wishlistID, viewerID string, authenticated bool) ([]*models.Item, error) {
	w, err := s.db.Wishlists.GetByID(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: wishlist %s", models.ErrNotFound, wishlistID)
	}
	if !wishlists.CanView(w, viewerID, authenticated) {
		return nil, fmt.Errorf("%w: wishlist is not visible to this viewer", models.ErrUnauthorized)
	}

	list, err := s.db.Items.ListByWishlist(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	for _, it := range list {
		attachParsedPrice(it)
	}
	return list, nil
}

// Update writes the caller-editable fields of an item; only the owner may
// update. A changed, non-empty price appends to the price history and runs
// the alert evaluator. Evaluator failures are logged, not propagated: the
// alert check is a derived side effect and must not fail the update.
func (s *Service) Update(ctx context.Context, actorID, itemID string, in models.ItemUpsert) (*models.Item, error) {
	it, err := s.db.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, fmt.Errorf("%w: item %s", models.ErrNotFound, itemID)
	}
	if it.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the item owner can update it", models.ErrUnauthorized)
	}

	if in.Title != "" {
		it.Title = in.Title
	}
	it.SourceURL = in.SourceURL
	it.AffiliateURL = in.AffiliateURL
	it.ImageURL = in.ImageURL
	it.Description = in.Description
	it.Notes = in.Notes
	it.Size = in.Size
	it.Priority = in.Priority
	if in.Quantity > 0 {
		it.Quantity = in.Quantity
	}
	if err := s.db.Items.UpdateDetails(ctx, it); err != nil {
		return nil, err
	}

	if in.Price != "" && in.Price != it.Price {
		if err := s.db.Items.UpdatePrice(ctx, itemID, in.Price); err != nil {
			return nil, err
		}
		it.Price = in.Price

		if s.evaluator != nil {
			if err := s.evaluator.EvaluatePriceChange(ctx, it); err != nil {
				log.Printf("[items] alert evaluation failed for item %s: %v", itemID, err)
			}
		}
	}

	return s.Get(ctx, itemID, actorID, true)
}

// Delete removes an item; only the owner may delete.
func (s *Service) Delete(ctx context.Context, actorID, itemID string) error {
	it, err := s.db.Items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it == nil {
		return fmt.Errorf("%w: item %s", models.ErrNotFound, itemID)
	}
	if it.OwnerID != actorID {
		return fmt.Errorf("%w: only the item owner can delete it", models.ErrUnauthorized)
	}
	return s.db.Items.Delete(ctx, itemID)
}
