package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered persona.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is unique and always stored lower-cased.
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	// The plaintext password is never stored.
	PasswordHash string

	// CreatedAt is when the user registered.
	CreatedAt time.Time

	// Usage is the user's usage log, oldest first. Only Facade.UserInfo
	// fills it in.
	Usage []UsageEntry
}

// NewUser creates a user with a fresh ID and normalized username.
func NewUser(username, passwordHash string) *User {
	return &User{
		ID:           uuid.New().String(),
		Username:     NormalizeUsername(username),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// NormalizeUsername trims and lower-cases a username. Every lookup goes
// through this so that usernames compare case-insensitively.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
