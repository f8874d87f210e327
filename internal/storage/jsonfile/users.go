package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/famfin/fintrack/internal/models"
)

type credentialRecord struct {
	ID           string    `json:"id"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

func (s *Store) credentialsPath() string {
	return filepath.Join(s.dir, credentialsFile)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := map[string]credentialRecord{}
	if err := s.load(s.credentialsPath(), &creds, true); err != nil {
		return err
	}
	if _, ok := creds[user.Username]; ok {
		return fmt.Errorf("%w: user %q", models.ErrAlreadyExists, user.Username)
	}

	creds[user.Username] = credentialRecord{
		ID:           user.ID,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}
	return s.save(s.credentialsPath(), creds)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := map[string]credentialRecord{}
	if err := s.load(s.credentialsPath(), &creds, false); err != nil {
		return nil, err
	}
	rec, ok := creds[username]
	if !ok {
		return nil, nil
	}
	return &models.User{
		ID:           rec.ID,
		Username:     username,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    rec.CreatedAt,
	}, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	creds := map[string]credentialRecord{}
	if err := s.load(s.credentialsPath(), &creds, true); err != nil {
		return err
	}
	rec, ok := creds[username]
	if !ok {
		return fmt.Errorf("%w: user %q", models.ErrNotFound, username)
	}
	rec.PasswordHash = hash
	creds[username] = rec
	return s.save(s.credentialsPath(), creds)
}
