// Package ledger implements the finance core: the category registry, each
// user's ledger of transactions, monthly budgets, and the Facade that every
// interface (RPC service, CLI, bot) goes through.
package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/internal/storage"
)

// Ledger records transactions. Every operation is scoped to an owner and
// never reads or writes another owner's records.
type Ledger struct {
	store      storage.TransactionStore
	categories *CategoryRegistry
}

func NewLedger(store storage.TransactionStore, categories *CategoryRegistry) *Ledger {
	return &Ledger{store: store, categories: categories}
}

// Add validates input and appends a new transaction for owner.
func (l *Ledger) Add(ctx context.Context, owner string, in models.NewTransaction) (*models.Transaction, error) {
	if err := validateAmount(in.Amount); err != nil {
		return nil, err
	}
	kind, err := models.ParseKind(in.Kind)
	if err != nil {
		return nil, err
	}
	category, err := l.categories.Resolve(ctx, in.Category)
	if err != nil {
		return nil, err
	}

	date := models.Today()
	if !in.Date.IsZero() {
		date = models.CalendarDate(in.Date)
	}

	tx := &models.Transaction{
		ID:          uuid.New().String(),
		Owner:       owner,
		Date:        date,
		Amount:      in.Amount,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Kind:        kind,
	}
	if err := l.store.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// List returns owner's transactions, most recent date first; transactions
// on the same date are ordered most recently recorded first.
func (l *Ledger) List(ctx context.Context, owner string) ([]models.Transaction, error) {
	return l.store.ListTransactions(ctx, owner)
}

// Get returns models.ErrNotFound if owner has no transaction with id.
func (l *Ledger) Get(ctx context.Context, owner, id string) (*models.Transaction, error) {
	tx, err := l.store.GetTransaction(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: transaction %s", models.ErrNotFound, id)
	}
	return tx, nil
}

// Edit applies the non-nil fields of patch. Every supplied field is
// validated before anything is written, so a rejected edit (for example an
// unknown category) leaves the stored record exactly as it was.
func (l *Ledger) Edit(ctx context.Context, owner, id string, patch models.TransactionPatch) (*models.Transaction, error) {
	tx, err := l.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if patch.IsEmpty() {
		return tx, nil
	}

	updated := *tx
	if patch.Amount != nil {
		if err := validateAmount(*patch.Amount); err != nil {
			return nil, err
		}
		updated.Amount = *patch.Amount
	}
	if patch.Kind != nil {
		kind, err := models.ParseKind(*patch.Kind)
		if err != nil {
			return nil, err
		}
		updated.Kind = kind
	}
	if patch.Date != nil {
		if patch.Date.IsZero() {
			return nil, fmt.Errorf("%w: date must not be empty", models.ErrValidation)
		}
		updated.Date = models.CalendarDate(*patch.Date)
	}
	if patch.Description != nil {
		updated.Description = strings.TrimSpace(*patch.Description)
	}
	if patch.Category != nil {
		category, err := l.categories.Resolve(ctx, *patch.Category)
		if err != nil {
			return nil, err
		}
		updated.Category = category
	}

	if err := l.store.UpdateTransaction(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete reports whether a transaction was removed. Deleting an unknown or
// already deleted id returns false and no error.
func (l *Ledger) Delete(ctx context.Context, owner, id string) (bool, error) {
	return l.store.DeleteTransaction(ctx, owner, id)
}

func validateAmount(amount decimal.Decimal) error {
	if amount.IsZero() {
		return fmt.Errorf("%w: amount must not be zero", models.ErrValidation)
	}
	return nil
}
