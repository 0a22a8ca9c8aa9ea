package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wishloop/models"
)

// FriendshipStore persists directed friendship edges.
type FriendshipStore struct {
	db *sql.DB
}

// NewFriendshipStore creates a new friendship store.
func NewFriendshipStore(db *sql.DB) *FriendshipStore {
	return &FriendshipStore{db: db}
}

const friendshipColumns = `id, user_id, friend_id, relationship_type, status, created_at, updated_at`

func scanFriendship(row interface{ Scan(...any) error }) (*models.Friendship, error) {
	f := &models.Friendship{}
	err := row.Scan(
		&f.ID,
		&f.UserID,
		&f.FriendID,
		&f.Type,
		&f.Status,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Create inserts a friendship edge.
func (s *FriendshipStore) Create(ctx context.Context, f *models.Friendship) error {
	now := time.Now().UTC()
	f.CreatedAt = now
	f.UpdatedAt = now
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO friendships (`+friendshipColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.UserID, f.FriendID, f.Type, f.Status, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert friendship: %w", err)
	}
	return nil
}

// Get returns the directed edge from userID to friendID, or nil when absent.
func (s *FriendshipStore) Get(ctx context.Context, userID, friendID string) (*models.Friendship, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+friendshipColumns+` FROM friendships WHERE user_id = ? AND friend_id = ?`, userID, friendID)
	f, err := scanFriendship(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get friendship: %w", err)
	}
	return f, nil
}

// ListByUser returns every edge originating from the given user.
func (s *FriendshipStore) ListByUser(ctx context.Context, userID string) ([]*models.Friendship, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+friendshipColumns+` FROM friendships WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list friendships by user: %w", err)
	}
	defer rows.Close()

	var edges []*models.Friendship
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, fmt.Errorf("scan friendship: %w", err)
		}
		edges = append(edges, f)
	}
	return edges, rows.Err()
}

// Update writes a friendship's relationship type and status.
func (s *FriendshipStore) Update(ctx context.Context, f *models.Friendship) error {
	f.UpdatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`UPDATE friendships SET relationship_type = ?, status = ?, updated_at = ? WHERE id = ?`,
		f.Type, f.Status, f.UpdatedAt, f.ID)
	if err != nil {
		return fmt.Errorf("update friendship: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a friendship edge.
func (s *FriendshipStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM friendships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete friendship: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// IsModeratorFor reports whether userID holds moderator standing for ownerID.
// Moderator standing is symmetric: an accepted moderator edge in either
// direction grants it, checked in a single query.
func (s *FriendshipStore) IsModeratorFor(ctx context.Context, ownerID, userID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM friendships
			WHERE relationship_type = ? AND status = ?
			  AND ((user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?))
		)`,
		models.RelationshipModerator, models.FriendshipAccepted,
		ownerID, userID, userID, ownerID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check moderator standing: %w", err)
	}
	return exists, nil
}
