package wishlists

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"wishloop/internal/database"
	"wishloop/models"
)

const defaultWishlistName = "My Wishlist"

// Service manages wishlist containers: CRUD, the lazy default list, the
// default-flag invariant, and privacy-gated reads.
type Service struct {
	db *database.DB
}

// NewService creates a new wishlist service.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Create makes a new wishlist for the owner with a fresh share token.
func (s *Service) Create(ctx context.Context, ownerID string, in models.WishlistUpsert) (*models.Wishlist, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: wishlist name is required", models.ErrInvalidState)
	}
	privacy := in.Privacy
	if privacy == "" {
		privacy = models.PrivacyPrivate
	}
	if !privacy.Valid() {
		return nil, fmt.Errorf("%w: unknown privacy tier %q", models.ErrInvalidState, in.Privacy)
	}

	token, err := generateShareToken(ctx, s.db.Wishlists.ShareTokenExists)
	if err != nil {
		return nil, fmt.Errorf("generate share token: %w", err)
	}

	w := &models.Wishlist{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        in.Name,
		Description: in.Description,
		Privacy:     privacy,
		ShareToken:  token,
		Icon:        in.Icon,
		Color:       in.Color,
		IsDefault:   in.IsDefault,
	}
	if err := s.db.Wishlists.Create(ctx, w); err != nil {
		return nil, err
	}

	log.Printf("[wishlists] created wishlist id=%s owner=%s privacy=%s default=%t", w.ID, ownerID, w.Privacy, w.IsDefault)
	return w, nil
}

// EnsureDefault returns the owner's default wishlist, creating one lazily
// when the owner has no lists at all. An owner with lists but no default
// flag gets their first list back without mutating flags.
func (s *Service) EnsureDefault(ctx context.Context, ownerID string) (*models.Wishlist, error) {
	w, err := s.db.Wishlists.GetDefault(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if w != nil {
		return w, nil
	}

	lists, err := s.db.Wishlists.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(lists) > 0 {
		return lists[0], nil
	}

	return s.Create(ctx, ownerID, models.WishlistUpsert{
		Name:      defaultWishlistName,
		Privacy:   models.PrivacyPrivate,
		IsDefault: true,
	})
}

// List returns the owner's wishlists.
func (s *Service) List(ctx context.Context, ownerID string) ([]*models.Wishlist, error) {
	return s.db.Wishlists.ListByOwner(ctx, ownerID)
}

// Get returns a wishlist by id, applying the privacy gate for the viewer.
func (s *Service) Get(ctx context.Context, id, viewerID string, authenticated bool) (*models.Wishlist, error) {
	w, err := s.db.Wishlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: wishlist %s", models.ErrNotFound, id)
	}
	if !CanView(w, viewerID, authenticated) {
		return nil, fmt.Errorf("%w: wishlist is not visible to this viewer", models.ErrUnauthorized)
	}
	return w, nil
}

// GetByShareToken resolves a share link. The token is purely a lookup key;
// the same privacy gate applies as for lookup by id.
func (s *Service) GetByShareToken(ctx context.Context, token, viewerID string, authenticated bool) (*models.Wishlist, error) {
	w, err := s.db.Wishlists.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: no wishlist for share token", models.ErrNotFound)
	}
	if !CanView(w, viewerID, authenticated) {
		return nil, fmt.Errorf("%w: wishlist is not visible to this viewer", models.ErrUnauthorized)
	}
	return w, nil
}

// Update writes the caller-editable fields; only the owner may update.
func (s *Service) Update(ctx context.Context, actorID, id string, in models.WishlistUpsert) (*models.Wishlist, error) {
	w, err := s.db.Wishlists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("%w: wishlist %s", models.ErrNotFound, id)
	}
	if w.OwnerID != actorID {
		return nil, fmt.Errorf("%w: only the owner can update a wishlist", models.ErrUnauthorized)
	}

	if in.Name != "" {
		w.Name = in.Name
	}
	w.Description = in.Description
	if in.Privacy != "" {
		if !in.Privacy.Valid() {
			return nil, fmt.Errorf("%w: unknown privacy tier %q", models.ErrInvalidState, in.Privacy)
		}
		w.Privacy = in.Privacy
	}
	w.Icon = in.Icon
	w.Color = in.Color
	if in.IsDefault {
		w.IsDefault = true
	}

	if err := s.db.Wishlists.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// SetDefault flags the given wishlist as the owner's default.
func (s *Service) SetDefault(ctx context.Context, actorID, id string) error {
	w, err := s.db.Wishlists.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: wishlist %s", models.ErrNotFound, id)
	}
	if w.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can set the default wishlist", models.ErrUnauthorized)
	}
	return s.db.Wishlists.SetDefault(ctx, actorID, id)
}

// Delete removes a wishlist and, via cascade, its items.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	w, err := s.db.Wishlists.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("%w: wishlist %s", models.ErrNotFound, id)
	}
	if w.OwnerID != actorID {
		return fmt.Errorf("%w: only the owner can delete a wishlist", models.ErrUnauthorized)
	}
	if err := s.db.Wishlists.Delete(ctx, id); err != nil {
		return err
	}
	log.Printf("[wishlists] deleted wishlist id=%s owner=%s", id, actorID)
	return nil
}
