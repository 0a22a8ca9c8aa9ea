package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wishloop/models"
)

// WishlistStore persists wishlist containers.
type WishlistStore struct {
	db *sql.DB
}

// NewWishlistStore creates a new wishlist store.
func NewWishlistStore(db *sql.DB) *WishlistStore {
	return &WishlistStore{db: db}
}

const wishlistColumns = `id, owner_id, name, description, privacy, share_token, icon, color, is_default, created_at, updated_at`

func scanWishlist(row interface{ Scan(...any) error }) (*models.Wishlist, error) {
	w := &models.Wishlist{}
	err := row.Scan(
		&w.ID,
		&w.OwnerID,
		&w.Name,
		&w.Description,
		&w.Privacy,
		&w.ShareToken,
		&w.Icon,
		&w.Color,
		&w.IsDefault,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Create inserts a wishlist. When the new list is flagged default, the
// owner's previous default is unset in the same transaction so the
// at-most-one-default invariant holds.
func (s *WishlistStore) Create(ctx context.Context, w *models.Wishlist) error {
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create wishlist: %w", err)
	}
	defer tx.Rollback()

	if w.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE wishlists SET is_default = 0, updated_at = ? WHERE owner_id = ? AND is_default = 1`,
			now, w.OwnerID); err != nil {
			return fmt.Errorf("unset previous default wishlist: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO wishlists (`+wishlistColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.OwnerID, w.Name, w.Description, w.Privacy, w.ShareToken, w.Icon, w.Color, w.IsDefault, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wishlist: %w", err)
	}

	return tx.Commit()
}

// GetByID returns the wishlist with the given id, or nil when absent.
func (s *WishlistStore) GetByID(ctx context.Context, id string) (*models.Wishlist, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wishlistColumns+` FROM wishlists WHERE id = ?`, id)
	w, err := scanWishlist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get wishlist by id: %w", err)
	}
	return w, nil
}

// GetByShareToken returns the wishlist with the given share token, or nil when absent.
func (s *WishlistStore) GetByShareToken(ctx context.Context, token string) (*models.Wishlist, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+wishlistColumns+` FROM wishlists WHERE share_token = ?`, token)
	w, err := scanWishlist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get wishlist by share token: %w", err)
	}
	return w, nil
}

// GetDefault returns the owner's default wishlist, or nil when none is flagged.
func (s *WishlistStore) GetDefault(ctx context.Context, ownerID string) (*models.Wishlist, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE owner_id = ? AND is_default = 1`, ownerID)
	w, err := scanWishlist(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get default wishlist: %w", err)
	}
	return w, nil
}

// ListByOwner returns all wishlists owned by the given user, default first.
func (s *WishlistStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Wishlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+wishlistColumns+` FROM wishlists WHERE owner_id = ? ORDER BY is_default DESC, created_at ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list wishlists by owner: %w", err)
	}
	defer rows.Close()

	var lists []*models.Wishlist
	for rows.Next() {
		w, err := scanWishlist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan wishlist: %w", err)
		}
		lists = append(lists, w)
	}
	return lists, rows.Err()
}

// Update writes the caller-editable fields of a wishlist. A list flagged
// default unseats the owner's previous default in the same transaction.
func (s *WishlistStore) Update(ctx context.Context, w *models.Wishlist) error {
	now := time.Now().UTC()
	w.UpdatedAt = now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update wishlist: %w", err)
	}
	defer tx.Rollback()

	if w.IsDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE wishlists SET is_default = 0, updated_at = ? WHERE owner_id = ? AND is_default = 1 AND id != ?`,
			now, w.OwnerID, w.ID); err != nil {
			return fmt.Errorf("unset previous default wishlist: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE wishlists SET name = ?, description = ?, privacy = ?, icon = ?, color = ?, is_default = ?, updated_at = ? WHERE id = ?`,
		w.Name, w.Description, w.Privacy, w.Icon, w.Color, w.IsDefault, w.UpdatedAt, w.ID,
	)
	if err != nil {
		return fmt.Errorf("update wishlist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}

	return tx.Commit()
}

// SetDefault flags the given wishlist as the owner's default, unsetting any
// previous default atomically.
func (s *WishlistStore) SetDefault(ctx context.Context, ownerID, id string) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set default wishlist: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE wishlists SET is_default = 0, updated_at = ? WHERE owner_id = ? AND is_default = 1`,
		now, ownerID); err != nil {
		return fmt.Errorf("unset previous default wishlist: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE wishlists SET is_default = 1, updated_at = ? WHERE id = ? AND owner_id = ?`,
		now, id, ownerID)
	if err != nil {
		return fmt.Errorf("set default wishlist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}

	return tx.Commit()
}

// Delete removes a wishlist; its items cascade via foreign key.
func (s *WishlistStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM wishlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete wishlist: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ShareTokenExists reports whether a share token is already taken.
func (s *WishlistStore) ShareTokenExists(ctx context.Context, token string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM wishlists WHERE share_token = ?)`, token).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check share token: %w", err)
	}
	return exists, nil
}
