package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/famfin/fintrack/internal/models"
)

// CreateUser inserts a new user into the database.
func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username) DO NOTHING
	`

	res, err := s.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt.Unix(),
	)
	if err != nil {
		return storageErr("create user", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("create user", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %q", models.ErrAlreadyExists, user.Username)
	}

	return nil
}

// GetUserByUsername retrieves a user by their normalized username.
func (s *SQLiteStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`

	user := &models.User{}
	var createdAt int64
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil // User not found
	}
	if err != nil {
		return nil, storageErr("get user by username", err)
	}

	user.CreatedAt = time.Unix(createdAt, 0).UTC()
	return user, nil
}

// UpdatePasswordHash replaces the stored hash for username.
func (s *SQLiteStore) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE users SET password_hash = ? WHERE username = ?",
		hash, username,
	)
	if err != nil {
		return storageErr("update password", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update password", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: user %q", models.ErrNotFound, username)
	}

	return nil
}
