package friends

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"wishloop/internal/database"
	"wishloop/models"
)

// Service manages directed friendship edges and moderator standing.
type Service struct {
	db *database.DB
}

// NewService creates a new friendship service.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Add creates a pending edge from the acting user to the target.
func (s *Service) Add(ctx context.Context, actorID, friendID string, relType models.RelationshipType) (*models.Friendship, error) {
	if friendID == "" || friendID == actorID {
		return nil, fmt.Errorf("%w: invalid friend id", models.ErrInvalidState)
	}
	if relType == "" {
		relType = models.RelationshipFriend
	}
	if !relType.Valid() {
		return nil, fmt.Errorf("%w: unknown relationship type %q", models.ErrInvalidState, relType)
	}

	existing, err := s.db.Friendships.Get(ctx, actorID, friendID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: friendship already exists", models.ErrInvalidState)
	}

	f := &models.Friendship{
		ID:       uuid.NewString(),
		UserID:   actorID,
		FriendID: friendID,
		Type:     relType,
		Status:   models.FriendshipPending,
	}
	if err := s.db.Friendships.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// List returns the acting user's outgoing edges.
func (s *Service) List(ctx context.Context, actorID string) ([]*models.Friendship, error) {
	return s.db.Friendships.ListByUser(ctx, actorID)
}

// Respond lets the target of an edge accept or block it; the originator may
// also update the relationship type of their own edge.
func (s *Service) Respond(ctx context.Context, actorID, userID, friendID string, status models.FriendshipStatus, relType models.RelationshipType) (*models.Friendship, error) {
	f, err := s.db.Friendships.Get(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: friendship edge", models.ErrNotFound)
	}
	if actorID != f.UserID && actorID != f.FriendID {
		return nil, fmt.Errorf("%w: not a party to this friendship", models.ErrUnauthorized)
	}

	if status != "" {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown friendship status %q", models.ErrInvalidState, status)
		}
		// Only the target of the edge accepts or blocks it.
		if actorID != f.FriendID {
			return nil, fmt.Errorf("%w: only the recipient can change the status", models.ErrUnauthorized)
		}
		f.Status = status
	}
	if relType != "" {
		if !relType.Valid() {
			return nil, fmt.Errorf("%w: unknown relationship type %q", models.ErrInvalidState, relType)
		}
		f.Type = relType
	}

	if err := s.db.Friendships.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Remove deletes an edge; either party may remove it.
func (s *Service) Remove(ctx context.Context, actorID, userID, friendID string) error {
	f, err := s.db.Friendships.Get(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if f == nil {
		return fmt.Errorf("%w: friendship edge", models.ErrNotFound)
	}
	if actorID != f.UserID && actorID != f.FriendID {
		return fmt.Errorf("%w: not a party to this friendship", models.ErrUnauthorized)
	}
	return s.db.Friendships.Delete(ctx, f.ID)
}

// IsModeratorFor reports whether userID moderates for ownerID, checking both
// edge directions in one lookup.
func (s *Service) IsModeratorFor(ctx context.Context, ownerID, userID string) (bool, error) {
	return s.db.Friendships.IsModeratorFor(ctx, ownerID, userID)
}
