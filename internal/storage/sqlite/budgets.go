package sqlite

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
)

// GetBudgets returns owner's limits for period keyed by category.
func (s *SQLiteStore) GetBudgets(ctx context.Context, owner string, period models.Period) (map[string]decimal.Decimal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, limit_amount FROM budgets WHERE owner = ? AND period = ?",
		owner, period.String(),
	)
	if err != nil {
		return nil, storageErr("get budgets", err)
	}
	defer rows.Close()

	budgets := make(map[string]decimal.Decimal)
	for rows.Next() {
		var (
			category string
			limit    decimal.Decimal
		)
		if err := rows.Scan(&category, &limit); err != nil {
			return nil, storageErr("scan budget", err)
		}
		budgets[category] = limit
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate budgets", err)
	}

	return budgets, nil
}

// UpsertBudgets writes every limit in a single SQL transaction.
func (s *SQLiteStore) UpsertBudgets(ctx context.Context, owner string, period models.Period, limits map[string]decimal.Decimal) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	for category, limit := range limits {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (owner, period, category, limit_amount) VALUES (?, ?, ?, ?)
			 ON CONFLICT (owner, period, category) DO UPDATE SET limit_amount = excluded.limit_amount`,
			owner, period.String(), category, limit.String(),
		)
		if err != nil {
			return storageErr("upsert budget", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}

	return nil
}

// DeleteBudget removes a single (owner, period, category) entry.
func (s *SQLiteStore) DeleteBudget(ctx context.Context, owner string, period models.Period, category string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE owner = ? AND period = ? AND category = ?",
		owner, period.String(), category,
	)
	if err != nil {
		return false, storageErr("delete budget", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("delete budget", err)
	}

	return n > 0, nil
}
