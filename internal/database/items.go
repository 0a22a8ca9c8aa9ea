package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wishloop/models"
)

// ItemStore persists wishlist items, their claim sub-records, and price
// history. Claim transitions use conditional updates so two concurrent
// callers cannot both win the same transition.
type ItemStore struct {
	db *sql.DB
}

// NewItemStore creates a new item store.
func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

const itemColumns = `id, wishlist_id, owner_id, title, source_url, affiliate_url, image_url, price, description, notes, size,
	priority, quantity, is_claimed, claimed_by, claim_status, is_purchased, purchased_by,
	proof_url, proof_purchased_at, proof_tracking, proof_notes, proof_amount, proof_anonymous,
	proof_verified, proof_rejected, verified_at, verified_by, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*models.Item, error) {
	it := &models.Item{}
	err := row.Scan(
		&it.ID,
		&it.WishlistID,
		&it.OwnerID,
		&it.Title,
		&it.SourceURL,
		&it.AffiliateURL,
		&it.ImageURL,
		&it.Price,
		&it.Description,
		&it.Notes,
		&it.Size,
		&it.Priority,
		&it.Quantity,
		&it.Claim.IsClaimed,
		&it.Claim.ClaimedBy,
		&it.Claim.Status,
		&it.Claim.IsPurchased,
		&it.Claim.PurchasedBy,
		&it.Claim.Proof.ProofURL,
		&it.Claim.Proof.PurchasedAt,
		&it.Claim.Proof.TrackingNumber,
		&it.Claim.Proof.Notes,
		&it.Claim.Proof.AmountPaid,
		&it.Claim.Proof.Anonymous,
		&it.Claim.ProofVerified,
		&it.Claim.ProofRejected,
		&it.Claim.VerifiedAt,
		&it.Claim.VerifiedBy,
		&it.CreatedAt,
		&it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// Create inserts a new item with an empty claim sub-record. When the item
// carries an initial price, the first price-history entry is written in the
// same transaction.
func (s *ItemStore) Create(ctx context.Context, it *models.Item) error {
	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	if it.Claim.Status == "" {
		it.Claim.Status = models.ClaimNone
	}
	if it.Quantity <= 0 {
		it.Quantity = 1
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create item: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO items (id, wishlist_id, owner_id, title, source_url, affiliate_url, image_url, price, description, notes, size, priority, quantity, claim_status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.WishlistID, it.OwnerID, it.Title, it.SourceURL, it.AffiliateURL, it.ImageURL, it.Price,
		it.Description, it.Notes, it.Size, it.Priority, it.Quantity, it.Claim.Status, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}

	if it.Price != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO price_history (item_id, price, recorded_at) VALUES (?, ?, ?)`,
			it.ID, it.Price, now); err != nil {
			return fmt.Errorf("insert initial price history: %w", err)
		}
		it.PriceHistory = []models.PricePoint{{Price: it.Price, RecordedAt: now}}
	}

	return tx.Commit()
}

// GetByID returns the item with the given id, or nil when absent.
func (s *ItemStore) GetByID(ctx context.Context, id string) (*models.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	it, err := scanItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get item by id: %w", err)
	}
	return it, nil
}

// ListByWishlist returns all items of a wishlist, newest first.
func (s *ItemStore) ListByWishlist(ctx context.Context, wishlistID string) ([]*models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE wishlist_id = ? ORDER BY created_at DESC`, wishlistID)
	if err != nil {
		return nil, fmt.Errorf("list items by wishlist: %w", err)
	}
	defer rows.Close()

	var items []*models.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateDetails writes the caller-editable non-price fields of an item.
func (s *ItemStore) UpdateDetails(ctx context.Context, it *models.Item) error {
	it.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET title = ?, source_url = ?, affiliate_url = ?, image_url = ?, description = ?, notes = ?, size = ?, priority = ?, quantity = ?, updated_at = ?
		 WHERE id = ?`,
		it.Title, it.SourceURL, it.AffiliateURL, it.ImageURL, it.Description, it.Notes, it.Size,
		it.Priority, it.Quantity, it.UpdatedAt, it.ID,
	)
	if err != nil {
		return fmt.Errorf("update item details: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// UpdatePrice writes a new price and appends a price-history snapshot,
// trimming the history to the cap, all in one transaction so concurrent
// price updates cannot lose entries.
func (s *ItemStore) UpdatePrice(ctx context.Context, itemID, price string) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update price: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE items SET price = ?, updated_at = ? WHERE id = ?`, price, now, itemID)
	if err != nil {
		return fmt.Errorf("update item price: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO price_history (item_id, price, recorded_at) VALUES (?, ?, ?)`,
		itemID, price, now); err != nil {
		return fmt.Errorf("append price history: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM price_history WHERE item_id = ? AND id NOT IN (
			SELECT id FROM price_history WHERE item_id = ? ORDER BY recorded_at DESC, id DESC LIMIT ?
		)`,
		itemID, itemID, models.PriceHistoryCap); err != nil {
		return fmt.Errorf("trim price history: %w", err)
	}

	return tx.Commit()
}

// PriceHistory returns an item's price snapshots, oldest first.
func (s *ItemStore) PriceHistory(ctx context.Context, itemID string) ([]models.PricePoint, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT price, recorded_at FROM price_history WHERE item_id = ? ORDER BY recorded_at ASC, id ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()

	var points []models.PricePoint
	for rows.Next() {
		var p models.PricePoint
		if err := rows.Scan(&p.Price, &p.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan price point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// Delete removes an item; price history, alerts, comments and reactions
// cascade via foreign keys.
func (s *ItemStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Claim transitions an unclaimed item to pending for the given user. It
// reports false when the item was not in the unclaimed state, which also
// covers a concurrent claimer winning the race.
func (s *ItemStore) Claim(ctx context.Context, itemID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET is_claimed = 1, claimed_by = ?, claim_status = ?, updated_at = ?
		 WHERE id = ? AND claim_status = ?`,
		userID, models.ClaimPending, time.Now().UTC(), itemID, models.ClaimNone)
	if err != nil {
		return false, fmt.Errorf("claim item: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Unclaim resets an item's claim fields regardless of current state.
func (s *ItemStore) Unclaim(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET is_claimed = 0, claimed_by = NULL, claim_status = ?, updated_at = ? WHERE id = ?`,
		models.ClaimNone, time.Now().UTC(), itemID)
	if err != nil {
		return fmt.Errorf("unclaim item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ConfirmClaim records the owner's verdict on a pending claim. Confirming
// marks the item purchased by the claimer; rejecting reopens the item.
func (s *ItemStore) ConfirmClaim(ctx context.Context, itemID string, confirm bool) error {
	now := time.Now().UTC()
	var (
		res sql.Result
		err error
	)
	if confirm {
		res, err = s.db.ExecContext(ctx,
			`UPDATE items SET claim_status = ?, is_purchased = 1, purchased_by = claimed_by, updated_at = ? WHERE id = ?`,
			models.ClaimConfirmed, now, itemID)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE items SET claim_status = ?, is_claimed = 0, claimed_by = NULL, updated_at = ? WHERE id = ?`,
			models.ClaimRejected, now, itemID)
	}
	if err != nil {
		return fmt.Errorf("confirm claim: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkPurchased records the claimer's proof of purchase and moves the claim
// to the purchased state, awaiting verification.
func (s *ItemStore) MarkPurchased(ctx context.Context, itemID, userID string, proof models.PurchaseProof) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET claim_status = ?, is_purchased = 1, purchased_by = ?,
			proof_url = ?, proof_purchased_at = ?, proof_tracking = ?, proof_notes = ?, proof_amount = ?, proof_anonymous = ?,
			updated_at = ?
		 WHERE id = ?`,
		models.ClaimPurchased, userID,
		proof.ProofURL, proof.PurchasedAt, proof.TrackingNumber, proof.Notes, proof.AmountPaid, proof.Anonymous,
		time.Now().UTC(), itemID)
	if err != nil {
		return fmt.Errorf("mark purchased: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// VerifyProof records the verifier's verdict on submitted proof. Accepting
// settles the claim as confirmed; rejecting flags the proof but leaves the
// claim itself untouched so it stays re-reviewable.
func (s *ItemStore) VerifyProof(ctx context.Context, itemID, verifierID string, verified bool) error {
	now := time.Now().UTC()
	var (
		res sql.Result
		err error
	)
	if verified {
		res, err = s.db.ExecContext(ctx,
			`UPDATE items SET proof_verified = 1, proof_rejected = 0, claim_status = ?, is_purchased = 1,
				purchased_by = COALESCE(claimed_by, purchased_by), verified_at = ?, verified_by = ?, updated_at = ?
			 WHERE id = ?`,
			models.ClaimConfirmed, now, verifierID, now, itemID)
	} else {
		res, err = s.db.ExecContext(ctx,
			`UPDATE items SET proof_verified = 0, proof_rejected = 1, verified_at = ?, verified_by = ?, updated_at = ?
			 WHERE id = ?`,
			now, verifierID, now, itemID)
	}
	if err != nil {
		return fmt.Errorf("verify proof: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Unpurchase clears the purchase fields. A confirmed claim is fully reopened;
// any other claim state is left as-is. The CASE expressions all evaluate
// against the pre-update row.
func (s *ItemStore) Unpurchase(ctx context.Context, itemID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET
			is_purchased = 0,
			purchased_by = NULL,
			is_claimed = CASE WHEN claim_status = ? THEN 0 ELSE is_claimed END,
			claimed_by = CASE WHEN claim_status = ? THEN NULL ELSE claimed_by END,
			claim_status = CASE WHEN claim_status = ? THEN ? ELSE claim_status END,
			updated_at = ?
		 WHERE id = ?`,
		models.ClaimConfirmed, models.ClaimConfirmed, models.ClaimConfirmed, models.ClaimNone,
		time.Now().UTC(), itemID)
	if err != nil {
		return fmt.Errorf("unpurchase item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Purchase marks an item purchased directly, bypassing the claim pipeline.
func (s *ItemStore) Purchase(ctx context.Context, itemID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE items SET is_purchased = 1, purchased_by = ?, updated_at = ? WHERE id = ?`,
		userID, time.Now().UTC(), itemID)
	if err != nil {
		return fmt.Errorf("purchase item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}
