package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wishloop/models"
)

// AlertStore persists price alerts.
type AlertStore struct {
	db *sql.DB
}

// NewAlertStore creates a new alert store.
func NewAlertStore(db *sql.DB) *AlertStore {
	return &AlertStore{db: db}
}

const alertColumns = `id, item_id, user_id, target_price, percent_drop, is_active, last_notified_at, created_at`

func scanAlert(row interface{ Scan(...any) error }) (*models.PriceAlert, error) {
	a := &models.PriceAlert{}
	err := row.Scan(
		&a.ID,
		&a.ItemID,
		&a.UserID,
		&a.TargetPrice,
		&a.PercentDrop,
		&a.IsActive,
		&a.LastNotifiedAt,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a price alert.
func (s *AlertStore) Create(ctx context.Context, a *models.PriceAlert) error {
	a.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO price_alerts (`+alertColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ItemID, a.UserID, a.TargetPrice, a.PercentDrop, a.IsActive, a.LastNotifiedAt, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert price alert: %w", err)
	}
	return nil
}

// GetByID returns the alert with the given id, or nil when absent.
func (s *AlertStore) GetByID(ctx context.Context, id string) (*models.PriceAlert, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+alertColumns+` FROM price_alerts WHERE id = ?`, id)
	a, err := scanAlert(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get price alert by id: %w", err)
	}
	return a, nil
}

// ListActiveByItem returns every active alert watching the given item.
func (s *AlertStore) ListActiveByItem(ctx context.Context, itemID string) ([]*models.PriceAlert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM price_alerts WHERE item_id = ? AND is_active = 1`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list active alerts by item: %w", err)
	}
	defer rows.Close()

	var alerts []*models.PriceAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// ListByUser returns every alert registered by the given user.
func (s *AlertStore) ListByUser(ctx context.Context, userID string) ([]*models.PriceAlert, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+alertColumns+` FROM price_alerts WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list alerts by user: %w", err)
	}
	defer rows.Close()

	var alerts []*models.PriceAlert
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, fmt.Errorf("scan price alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// MarkNotified stamps an alert's last notification time.
func (s *AlertStore) MarkNotified(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE price_alerts SET last_notified_at = ? WHERE id = ?`, at, id)
	if err != nil {
		return fmt.Errorf("mark alert notified: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// SetActive toggles an alert on or off.
func (s *AlertStore) SetActive(ctx context.Context, id string, active bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE price_alerts SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("set alert active: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes an alert.
func (s *AlertStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM price_alerts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete price alert: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
