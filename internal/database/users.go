package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"wishloop/models"
)

// UserStore persists user profiles mirrored from the OAuth provider.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new user store.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Upsert inserts the user or refreshes its profile fields on conflict.
func (s *UserStore) Upsert(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.UpdatedAt = now
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, avatar_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name, email = excluded.email, avatar_url = excluded.avatar_url, updated_at = excluded.updated_at`,
		u.ID, u.Name, u.Email, u.AvatarURL, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

// GetByID returns the user with the given id, or nil when absent.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, avatar_url, created_at, updated_at FROM users WHERE id = ?`, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}
