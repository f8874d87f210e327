package auth

import (
	"context"

	"github.com/famfin/fintrack/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the credential scheme without changing
// the ledger or the service layer.
type Authenticator interface {
	// Register creates a persona with the given username and credential.
	// Returns models.ErrAlreadyExists if the normalized username is taken.
	Register(ctx context.Context, username, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the user if it matches.
	// Returns models.ErrWrongCredentials for an unknown user or a mismatch.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ChangeCredential replaces the credential after verifying the old one.
	ChangeCredential(ctx context.Context, username, oldCredential, newCredential string) error

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
