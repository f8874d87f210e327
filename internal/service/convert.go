package service

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/calculator"
	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/pkg/api"
)

func toAPIUser(u *models.User) api.User {
	user := api.User{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
	for _, e := range u.Usage {
		user.Usage = append(user.Usage, api.UsageEntry{Feature: e.Feature, At: e.At})
	}
	return user
}

func toAPITransaction(tx *models.Transaction) api.Transaction {
	return api.Transaction{
		ID:          tx.ID,
		Date:        tx.Date.Format(models.DateLayout),
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Kind:        string(tx.Kind),
	}
}

func toAPIAlerts(us []calculator.Utilization) []api.Alert {
	alerts := make([]api.Alert, 0, len(us))
	for _, u := range us {
		alerts = append(alerts, api.Alert{
			Category: u.Category,
			Spent:    u.Spent,
			Limit:    u.Limit,
			Percent:  u.Percent,
			Status:   string(u.Status),
		})
	}
	return alerts
}

func toAPISummary(s calculator.Summary) api.Summary {
	byKind := make(map[string]decimal.Decimal, len(s.ByKind))
	for kind, total := range s.ByKind {
		byKind[string(kind)] = total
	}
	byCategory := make([]api.CategoryTotal, 0, len(s.ByCategory))
	for _, c := range s.ByCategory {
		byCategory = append(byCategory, api.CategoryTotal{Category: c.Category, Total: c.Total})
	}
	return api.Summary{
		Period:     s.Period.String(),
		Income:     s.Income,
		Expenses:   s.Expenses,
		Balance:    s.Balance,
		ByKind:     byKind,
		ByCategory: byCategory,
		Count:      s.Count,
	}
}

// parsePeriod treats an empty string as the current period.
func parsePeriod(s string) (models.Period, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.CurrentPeriod(), nil
	}
	return models.ParsePeriod(s)
}

// parseOptionalDate leaves the date zero when s is empty.
func parseOptionalDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Time{}, nil
	}
	return models.ParseDate(s)
}
