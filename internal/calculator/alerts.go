package calculator

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
)

// AlertStatus classifies how much of a budget has been spent.
type AlertStatus string

const (
	StatusOK       AlertStatus = "OK"
	StatusWarning  AlertStatus = "Warning"
	StatusExceeded AlertStatus = "Exceeded"
)

var (
	warningRatio = decimal.RequireFromString("0.8")
	hundred      = decimal.NewFromInt(100)
)

// Utilization is the spending of one budgeted category in a period.
type Utilization struct {
	Category string
	Spent    decimal.Decimal
	Limit    decimal.Decimal
	// Percent is Spent/Limit*100 rounded to two places, for display only.
	Percent decimal.Decimal
	Status  AlertStatus
}

// Alerting reports whether the status should be surfaced to the user.
func (s AlertStatus) Alerting() bool {
	return s == StatusWarning || s == StatusExceeded
}

// Classify compares spent against limit:
// below 80% is OK, from 80% up to but excluding 100% is a warning, and 100%
// or more is exceeded. The comparison is exact; no ratio is rounded.
// A non-positive limit is always OK.
func Classify(spent, limit decimal.Decimal) AlertStatus {
	if !limit.IsPositive() {
		return StatusOK
	}
	switch {
	case spent.GreaterThanOrEqual(limit):
		return StatusExceeded
	case spent.GreaterThanOrEqual(limit.Mul(warningRatio)):
		return StatusWarning
	default:
		return StatusOK
	}
}

// SpentByCategory sums the absolute value of expenses dated within period,
// keyed by category. Income and non-negative amounts never count.
func SpentByCategory(txs []models.Transaction, period models.Period) map[string]decimal.Decimal {
	spent := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if !tx.IsExpense() || !period.Contains(tx.Date) {
			continue
		}
		spent[tx.Category] = spent[tx.Category].Add(tx.Amount.Abs())
	}
	return spent
}

// EvaluateBudgets computes the utilization of every budget with a positive
// limit. The result is sorted by category and is never cached: callers pass
// the current transactions and budgets on every query.
func EvaluateBudgets(budgets map[string]decimal.Decimal, txs []models.Transaction, period models.Period) []Utilization {
	spent := SpentByCategory(txs, period)

	result := make([]Utilization, 0, len(budgets))
	for category, limit := range budgets {
		if !limit.IsPositive() {
			continue
		}
		s := spent[category]
		result = append(result, Utilization{
			Category: category,
			Spent:    s,
			Limit:    limit,
			Percent:  s.Mul(hundred).DivRound(limit, 2),
			Status:   Classify(s, limit),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Category < result[j].Category
	})
	return result
}
