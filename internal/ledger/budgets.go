package ledger

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/internal/storage"
)

// BudgetBook manages monthly per-category spending limits.
// A zero Period always means the current month.
type BudgetBook struct {
	store      storage.BudgetStore
	categories *CategoryRegistry
}

func NewBudgetBook(store storage.BudgetStore, categories *CategoryRegistry) *BudgetBook {
	return &BudgetBook{store: store, categories: categories}
}

// Get returns owner's limits for period. Categories without a budget are absent.
func (b *BudgetBook) Get(ctx context.Context, owner string, period models.Period) (map[string]decimal.Decimal, error) {
	return b.store.GetBudgets(ctx, owner, period.OrCurrent())
}

// SetMany upserts every positive limit and removes the budget of every
// category given a zero or negative limit. All names are checked before
// anything is written: an unknown category rejects the whole call.
func (b *BudgetBook) SetMany(ctx context.Context, owner string, period models.Period, limits map[string]decimal.Decimal) error {
	period = period.OrCurrent()

	upserts := make(map[string]decimal.Decimal)
	var removals []string
	seen := make(map[string]bool, len(limits))
	for name, limit := range limits {
		category := models.NormalizeCategory(name)
		if category == "" {
			return fmt.Errorf("%w: category must not be empty", models.ErrValidation)
		}
		if seen[category] {
			return fmt.Errorf("%w: category %q given more than once", models.ErrValidation, category)
		}
		seen[category] = true

		if limit.IsPositive() {
			if _, err := b.categories.Resolve(ctx, category); err != nil {
				return err
			}
			upserts[category] = limit
		} else {
			removals = append(removals, category)
		}
	}

	if len(upserts) > 0 {
		if err := b.store.UpsertBudgets(ctx, owner, period, upserts); err != nil {
			return err
		}
	}
	for _, category := range removals {
		if _, err := b.store.DeleteBudget(ctx, owner, period, category); err != nil {
			return err
		}
	}
	return nil
}

// Remove reports whether a budget existed and was removed.
func (b *BudgetBook) Remove(ctx context.Context, owner, category string, period models.Period) (bool, error) {
	return b.store.DeleteBudget(ctx, owner, period.OrCurrent(), models.NormalizeCategory(category))
}
