package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
)

// CategoryTotal is the net amount recorded against one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Summary aggregates a ledger over one period.
type Summary struct {
	Period models.Period

	// Income is the sum of positive amounts.
	Income decimal.Decimal
	// Expenses is the sum of negative amounts, so it is zero or negative.
	Expenses decimal.Decimal
	// Balance is Income + Expenses.
	Balance decimal.Decimal

	// ByKind sums amounts per kind, whatever their sign.
	ByKind map[models.Kind]decimal.Decimal
	// ByCategory is sorted by total ascending, so the largest spending
	// category comes first.
	ByCategory []CategoryTotal

	Count int
}

// Summarize computes totals for the transactions dated within period.
// Totals are by sign, matching the dashboard, so a negative amount tagged
// Income still counts as an expense here.
func Summarize(txs []models.Transaction, period models.Period) Summary {
	s := Summary{
		Period: period,
		ByKind: make(map[models.Kind]decimal.Decimal),
	}
	byCategory := make(map[string]decimal.Decimal)

	for _, tx := range txs {
		if !period.Contains(tx.Date) {
			continue
		}
		s.Count++
		if tx.Amount.IsPositive() {
			s.Income = s.Income.Add(tx.Amount)
		} else {
			s.Expenses = s.Expenses.Add(tx.Amount)
		}
		s.ByKind[tx.Kind] = s.ByKind[tx.Kind].Add(tx.Amount)
		byCategory[tx.Category] = byCategory[tx.Category].Add(tx.Amount)
	}
	s.Balance = s.Income.Add(s.Expenses)

	s.ByCategory = make([]CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		s.ByCategory = append(s.ByCategory, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if c := s.ByCategory[i].Total.Cmp(s.ByCategory[j].Total); c != 0 {
			return c < 0
		}
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})

	return s
}
