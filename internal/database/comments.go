package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"wishloop/models"
)

// CommentStore persists item comments and emoji reactions.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new comment store.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// CreateComment inserts a comment.
func (s *CommentStore) CreateComment(ctx context.Context, c *models.Comment) error {
	c.CreatedAt = time.Now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (id, item_id, user_id, body, created_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.ItemID, c.UserID, c.Body, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

// GetComment returns the comment with the given id, or nil when absent.
func (s *CommentStore) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	c := &models.Comment{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, item_id, user_id, body, created_at FROM comments WHERE id = ?`, id).
		Scan(&c.ID, &c.ItemID, &c.UserID, &c.Body, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment: %w", err)
	}
	return c, nil
}

// ListComments returns an item's comments, oldest first.
func (s *CommentStore) ListComments(ctx context.Context, itemID string) ([]*models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, user_id, body, created_at FROM comments WHERE item_id = ? ORDER BY created_at ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		c := &models.Comment{}
		if err := rows.Scan(&c.ID, &c.ItemID, &c.UserID, &c.Body, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

// DeleteComment removes a comment.
func (s *CommentStore) DeleteComment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ToggleReaction adds the reaction when absent and removes it when present,
// in one transaction. It reports whether the reaction exists afterwards.
func (s *CommentStore) ToggleReaction(ctx context.Context, itemID, userID, emoji string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin toggle reaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`DELETE FROM reactions WHERE item_id = ? AND user_id = ? AND emoji = ?`, itemID, userID, emoji)
	if err != nil {
		return false, fmt.Errorf("remove reaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, tx.Commit()
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reactions (id, item_id, user_id, emoji, created_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), itemID, userID, emoji, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("insert reaction: %w", err)
	}

	return true, tx.Commit()
}

// ListReactions returns an item's reactions, oldest first.
func (s *CommentStore) ListReactions(ctx context.Context, itemID string) ([]*models.Reaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, item_id, user_id, emoji, created_at FROM reactions WHERE item_id = ? ORDER BY created_at ASC`, itemID)
	if err != nil {
		return nil, fmt.Errorf("list reactions: %w", err)
	}
	defer rows.Close()

	var reactions []*models.Reaction
	for rows.Next() {
		r := &models.Reaction{}
		if err := rows.Scan(&r.ID, &r.ItemID, &r.UserID, &r.Emoji, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reaction: %w", err)
		}
		reactions = append(reactions, r)
	}
	return reactions, rows.Err()
}
