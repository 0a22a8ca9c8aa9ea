package alerts

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"wishloop/internal/database"
	"wishloop/models"
)

// Service manages the price alerts a user has registered.
type Service struct {
	db *database.DB
}

// NewService creates a new alert management service.
func NewService(db *database.DB) *Service {
	return &Service{db: db}
}

// Create registers an alert on an item for the acting user. At least one of
// targetPrice or percentDrop must be set; a single item may carry multiple
// alerts from the same or different users.
func (s *Service) Create(ctx context.Context, actorID, itemID string, targetPrice *string, percentDrop *float64) (*models.PriceAlert, error) {
	if targetPrice == nil && percentDrop == nil {
		return nil, fmt.Errorf("%w: alert needs a target price or a percent drop", models.ErrInvalidState)
	}
	if targetPrice != nil {
		if _, err := models.ParseAmount(*targetPrice); err != nil {
			return nil, err
		}
	}
	if percentDrop != nil && (*percentDrop <= 0 || *percentDrop > 100) {
		return nil, fmt.Errorf("%w: percent drop must be in (0, 100]", models.ErrInvalidState)
	}

	item, err := s.db.Items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", models.ErrNotFound, itemID)
	}

	a := &models.PriceAlert{
		ID:          uuid.NewString(),
		ItemID:      itemID,
		UserID:      actorID,
		TargetPrice: targetPrice,
		PercentDrop: percentDrop,
		IsActive:    true,
	}
	if err := s.db.Alerts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns the acting user's alerts.
func (s *Service) List(ctx context.Context, actorID string) ([]*models.PriceAlert, error) {
	return s.db.Alerts.ListByUser(ctx, actorID)
}

// SetActive toggles one of the acting user's alerts.
func (s *Service) SetActive(ctx context.Context, actorID, id string, active bool) error {
	a, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	return s.db.Alerts.SetActive(ctx, a.ID, active)
}

// Delete removes one of the acting user's alerts.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	a, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}
	return s.db.Alerts.Delete(ctx, a.ID)
}

func (s *Service) owned(ctx context.Context, actorID, id string) (*models.PriceAlert, error) {
	a, err := s.db.Alerts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: alert %s", models.ErrNotFound, id)
	}
	if a.UserID != actorID {
		return nil, fmt.Errorf("%w: alert belongs to another user", models.ErrUnauthorized)
	}
	return a, nil
}
