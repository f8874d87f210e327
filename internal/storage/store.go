// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
)

// UserStore persists credentials.
type UserStore interface {
	// CreateUser persists a new user.
	// Returns models.ErrAlreadyExists if the username is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername returns nil and no error if the user does not exist.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// UpdatePasswordHash replaces a user's hash.
	// Returns models.ErrNotFound if the user does not exist.
	UpdatePasswordHash(ctx context.Context, username, hash string) error

	// RecordUsage appends entry to the user's usage log. The caller checks
	// that the user exists.
	RecordUsage(ctx context.Context, username string, entry models.UsageEntry) error

	// ListUsage returns the user's usage log, oldest first.
	ListUsage(ctx context.Context, username string) ([]models.UsageEntry, error)
}

// CategoryStore persists the global category registry.
type CategoryStore interface {
	// ListCategories returns category names in insertion order.
	ListCategories(ctx context.Context) ([]string, error)

	// AddCategory returns models.ErrAlreadyExists on duplicates.
	AddCategory(ctx context.Context, name string) error

	// RemoveCategory returns models.ErrNotFound if the category is absent and
	// models.ErrCategoryInUse if any transaction or budget references it. The
	// check and the delete happen as one atomic operation.
	RemoveCategory(ctx context.Context, name string) error

	// RenameCategory renames a category and every transaction and budget that
	// references it, as one atomic operation.
	RenameCategory(ctx context.Context, oldName, newName string) error

	// CategoryInUse reports whether any transaction or budget of any user
	// references the category.
	CategoryInUse(ctx context.Context, name string) (bool, error)
}

// TransactionStore persists ledgers. Every method is scoped to an owner and
// must never read or write another owner's records.
type TransactionStore interface {
	// CreateTransaction persists tx. The store assigns tx.Seq.
	CreateTransaction(ctx context.Context, tx *models.Transaction) error

	// GetTransaction returns nil and no error if the owner has no such id.
	GetTransaction(ctx context.Context, owner, id string) (*models.Transaction, error)

	// ListTransactions returns the owner's transactions ordered by date
	// descending, then by Seq descending.
	ListTransactions(ctx context.Context, owner string) ([]models.Transaction, error)

	// UpdateTransaction overwrites the stored record with tx.
	// Returns models.ErrNotFound if the owner has no such id.
	UpdateTransaction(ctx context.Context, tx *models.Transaction) error

	// DeleteTransaction reports whether a record was removed.
	DeleteTransaction(ctx context.Context, owner, id string) (bool, error)
}

// BudgetStore persists monthly limits keyed by (owner, period, category).
type BudgetStore interface {
	GetBudgets(ctx context.Context, owner string, period models.Period) (map[string]decimal.Decimal, error)

	// UpsertBudgets writes every entry of limits in one atomic operation.
	UpsertBudgets(ctx context.Context, owner string, period models.Period, limits map[string]decimal.Decimal) error

	// DeleteBudget reports whether an entry existed and was removed.
	DeleteBudget(ctx context.Context, owner string, period models.Period, category string) (bool, error)
}

// Store is the persistence port the ledger is built on.
// This abstraction allows swapping storage backends (SQLite, JSON files,
// memory) without changing the ledger.
type Store interface {
	UserStore
	CategoryStore
	TransactionStore
	BudgetStore

	// Close releases any resources held by the store.
	Close() error
}
