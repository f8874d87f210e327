package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/famfin/fintrack/internal/models"
)

var _ Authenticator = (*PasswordAuthenticator)(nil)

// UserStorage defines the interface for user persistence operations.
// This allows the authenticator to be independent of the storage implementation.
type UserStorage interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, username, hash string) error
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
type PasswordAuthenticator struct {
	storage UserStorage
	cost    int
}

// Option configures a PasswordAuthenticator.
type Option func(*PasswordAuthenticator)

// WithCost sets the bcrypt cost. Tests use bcrypt.MinCost.
func WithCost(cost int) Option {
	return func(a *PasswordAuthenticator) {
		a.cost = cost
	}
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage UserStorage, opts ...Option) *PasswordAuthenticator {
	a := &PasswordAuthenticator{
		storage: storage,
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ValidateCredential rejects empty passwords and passwords bcrypt cannot hash.
// There is no minimum length.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if credential == "" {
		return fmt.Errorf("%w: password must not be empty", models.ErrValidation)
	}
	if len(credential) > 72 {
		return fmt.Errorf("%w: password must be at most 72 bytes", models.ErrValidation)
	}
	return nil
}

// Register creates a new user with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, username, credential string) (*models.User, error) {
	username = models.NormalizeUsername(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be empty", models.ErrValidation)
	}
	if strings.ContainsAny(username, " \t\n") {
		return nil, fmt.Errorf("%w: username must not contain whitespace", models.ErrValidation)
	}
	if err := a.ValidateCredential(credential); err != nil {
		return nil, err
	}

	existing, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: user %q", models.ErrAlreadyExists, username)
	}

	hash, err := a.hash(credential)
	if err != nil {
		return nil, err
	}

	user := models.NewUser(username, hash)
	if err := a.storage.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the username and password, returning the user if valid.
// Storage failures are returned as is so callers can tell them apart from a
// wrong password.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, username, credential string) (*models.User, error) {
	user, err := a.storage.GetUserByUsername(ctx, models.NormalizeUsername(username))
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, models.ErrWrongCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return nil, models.ErrWrongCredentials
	}

	return user, nil
}

// Verify reports whether the password matches the stored hash.
func (a *PasswordAuthenticator) Verify(ctx context.Context, username, credential string) bool {
	user, err := a.Authenticate(ctx, username, credential)
	return err == nil && user != nil
}

// ChangeCredential replaces the user's hash once the old password verifies.
func (a *PasswordAuthenticator) ChangeCredential(ctx context.Context, username, oldCredential, newCredential string) error {
	username = models.NormalizeUsername(username)

	user, err := a.storage.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %q", models.ErrNotFound, username)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldCredential)); err != nil {
		return models.ErrWrongCredentials
	}
	if err := a.ValidateCredential(newCredential); err != nil {
		return err
	}

	hash, err := a.hash(newCredential)
	if err != nil {
		return err
	}
	if err := a.storage.UpdatePasswordHash(ctx, username, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (a *PasswordAuthenticator) hash(credential string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), a.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %v", models.ErrValidation, err)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}
