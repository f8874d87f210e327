package jsonfile

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
)

// budgetFile maps "YYYY-MM" to category limits.
type budgetFile map[string]map[string]decimal.Decimal

func (s *Store) GetBudgets(ctx context.Context, owner string, period models.Period) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book := budgetFile{}
	if err := s.load(s.userFile("budgets", owner), &book, false); err != nil {
		return nil, err
	}

	budgets := make(map[string]decimal.Decimal, len(book[period.String()]))
	for category, limit := range book[period.String()] {
		budgets[category] = limit
	}
	return budgets, nil
}

func (s *Store) UpsertBudgets(ctx context.Context, owner string, period models.Period, limits map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.userFile("budgets", owner)
	book := budgetFile{}
	if err := s.load(path, &book, true); err != nil {
		return err
	}

	key := period.String()
	if book[key] == nil {
		book[key] = make(map[string]decimal.Decimal)
	}
	for category, limit := range limits {
		book[key][category] = limit
	}
	return s.save(path, book)
}

func (s *Store) DeleteBudget(ctx context.Context, owner string, period models.Period, category string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.userFile("budgets", owner)
	book := budgetFile{}
	if err := s.load(path, &book, true); err != nil {
		return false, err
	}

	key := period.String()
	if _, ok := book[key][category]; !ok {
		return false, nil
	}
	delete(book[key], category)
	if len(book[key]) == 0 {
		delete(book, key)
	}
	return true, s.save(path, book)
}
