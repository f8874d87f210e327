// Package memory provides an in-process implementation of storage.Store.
// Data is lost when the process exits.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/internal/storage"
)

var _ storage.Store = (*Store)(nil)

type budgetKey struct {
	owner    string
	period   models.Period
	category string
}

// Store keeps everything in maps guarded by one mutex.
type Store struct {
	mu           sync.RWMutex
	users        map[string]models.User
	categories   []string
	transactions map[string][]models.Transaction // owner -> records
	budgets      map[budgetKey]decimal.Decimal
	usage        map[string][]models.UsageEntry
	seq          int64
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:        make(map[string]models.User),
		transactions: make(map[string][]models.Transaction),
		budgets:      make(map[budgetKey]decimal.Decimal),
		usage:        make(map[string][]models.UsageEntry),
	}
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Username]; ok {
		return fmt.Errorf("%w: user %q", models.ErrAlreadyExists, user.Username)
	}
	s.users[user.Username] = *user
	return nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (s *Store) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return fmt.Errorf("%w: user %q", models.ErrNotFound, username)
	}
	u.PasswordHash = hash
	s.users[username] = u
	return nil
}

func (s *Store) RecordUsage(ctx context.Context, username string, entry models.UsageEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usage[username] = append(s.usage[username], entry)
	return nil
}

func (s *Store) ListUsage(ctx context.Context, username string) ([]models.UsageEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := slices.Clone(s.usage[username])
	if entries == nil {
		entries = []models.UsageEntry{}
	}
	return entries, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.categories), nil
}

func (s *Store) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.categories, name) {
		return fmt.Errorf("%w: category %q", models.ErrAlreadyExists, name)
	}
	s.categories = append(s.categories, name)
	return nil
}

func (s *Store) RemoveCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.categories, name)
	if i < 0 {
		return fmt.Errorf("%w: category %q", models.ErrNotFound, name)
	}
	if s.categoryInUse(name) {
		return fmt.Errorf("%w: %q", models.ErrCategoryInUse, name)
	}
	s.categories = slices.Delete(s.categories, i, i+1)
	return nil
}

func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.Index(s.categories, oldName)
	if i < 0 {
		return fmt.Errorf("%w: category %q", models.ErrNotFound, oldName)
	}
	if slices.Contains(s.categories, newName) {
		return fmt.Errorf("%w: category %q", models.ErrAlreadyExists, newName)
	}
	s.categories[i] = newName

	for owner, txs := range s.transactions {
		for j := range txs {
			if txs[j].Category == oldName {
				txs[j].Category = newName
			}
		}
		s.transactions[owner] = txs
	}
	for k, limit := range s.budgets {
		if k.category == oldName {
			delete(s.budgets, k)
			k.category = newName
			s.budgets[k] = limit
		}
	}
	return nil
}

func (s *Store) CategoryInUse(ctx context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoryInUse(name), nil
}

// categoryInUse expects s.mu to be held.
func (s *Store) categoryInUse(name string) bool {
	for _, txs := range s.transactions {
		for _, tx := range txs {
			if tx.Category == name {
				return true
			}
		}
	}
	for k := range s.budgets {
		if k.category == name {
			return true
		}
	}
	return false
}

func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	tx.Seq = s.seq
	s.transactions[tx.Owner] = append(s.transactions[tx.Owner], *tx)
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, owner, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.transactions[owner] {
		if tx.ID == id {
			return &tx, nil
		}
	}
	return nil, nil
}

func (s *Store) ListTransactions(ctx context.Context, owner string) ([]models.Transaction, error) {
	s.mu.RLock()
	txs := slices.Clone(s.transactions[owner])
	s.mu.RUnlock()

	if txs == nil {
		txs = []models.Transaction{}
	}
	models.SortTransactions(txs)
	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := s.transactions[tx.Owner]
	for i := range txs {
		if txs[i].ID == tx.ID {
			updated := *tx
			updated.Seq = txs[i].Seq
			txs[i] = updated
			return nil
		}
	}
	return fmt.Errorf("%w: transaction %s", models.ErrNotFound, tx.ID)
}

func (s *Store) DeleteTransaction(ctx context.Context, owner, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txs := s.transactions[owner]
	for i := range txs {
		if txs[i].ID == id {
			s.transactions[owner] = slices.Delete(txs, i, i+1)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetBudgets(ctx context.Context, owner string, period models.Period) (map[string]decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	budgets := make(map[string]decimal.Decimal)
	for k, limit := range s.budgets {
		if k.owner == owner && k.period == period {
			budgets[k.category] = limit
		}
	}
	return budgets, nil
}

func (s *Store) UpsertBudgets(ctx context.Context, owner string, period models.Period, limits map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for category, limit := range limits {
		s.budgets[budgetKey{owner: owner, period: period, category: category}] = limit
	}
	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, owner string, period models.Period, category string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k := budgetKey{owner: owner, period: period, category: category}
	if _, ok := s.budgets[k]; !ok {
		return false, nil
	}
	delete(s.budgets, k)
	return true, nil
}
