package comments

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"wishloop/internal/database"
	"wishloop/models"
)

// Service manages item comments and emoji reactions.
type Service struct {
	db *database.DB
}

// NewService creates a new comment service.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

func (s *Service) itemExists(ctx context.Context, itemID string) error {
	it, err := s.db.Items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if it == nil {
		return fmt.Errorf("%w: item %s", models.ErrNotFound, itemID)
	}
	return nil
}

// AddComment attaches a comment to an item.
func (s *Service) AddComment(ctx context.Context, actorID, itemID, body string) (*models.Comment, error) {
	if body == "" {
		return nil, fmt.Errorf("%w: comment body is required", models.ErrInvalidState)
	}
	if err := s.itemExists(ctx, itemID); err != nil {
		return nil, err
	}

	c := &models.Comment{
		ID:     uuid.NewString(),
		ItemID: itemID,
		UserID: actorID,
		Body:   body,
	}
	if err := s.db.Comments.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListComments returns an item's comments.
func (s *Service) ListComments(ctx context.Context, itemID string) ([]*models.Comment, error) {
	if err := s.itemExists(ctx, itemID); err != nil {
		return nil, err
	}
	return s.db.Comments.ListComments(ctx, itemID)
}

// DeleteComment removes a comment; the author or the item's owner may delete.
func (s *Service) DeleteComment(ctx context.Context, actorID, commentID string) error {
	c, err := s.db.Comments.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: comment %s", models.ErrNotFound, commentID)
	}

	if c.UserID != actorID {
		it, err := s.db.Items.GetByID(ctx, c.ItemID)
		if err != nil {
			return err
		}
		if it == nil || it.OwnerID != actorID {
			return fmt.Errorf("%w: only the author or the item owner can delete a comment", models.ErrUnauthorized)
		}
	}
	return s.db.Comments.DeleteComment(ctx, commentID)
}

// ToggleReaction adds or removes the acting user's emoji reaction on an item.
// It reports whether the reaction exists afterwards.
func (s *Service) ToggleReaction(ctx context.Context, actorID, itemID, emoji string) (bool, error) {
	if emoji == "" {
		return false, fmt.Errorf("%w: emoji is required", models.ErrInvalidState)
	}
	if err := s.itemExists(ctx, itemID); err != nil {
		return false, err
	}
	return s.db.Comments.ToggleReaction(ctx, itemID, actorID, emoji)
}

// ListReactions returns an item's reactions.
func (s *Service) ListReactions(ctx context.Context, itemID string) ([]*models.Reaction, error) {
	if err := s.itemExists(ctx, itemID); err != nil {
		return nil, err
	}
	return s.db.Comments.ListReactions(ctx, itemID)
}
