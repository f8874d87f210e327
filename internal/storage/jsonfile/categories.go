package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/famfin/fintrack/internal/models"
)

func (s *Store) categoriesPath() string {
	return filepath.Join(s.dir, categoriesFile)
}

func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{}
	if err := s.load(s.categoriesPath(), &names, false); err != nil {
		return nil, err
	}
	return names, nil
}

func (s *Store) AddCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{}
	if err := s.load(s.categoriesPath(), &names, true); err != nil {
		return err
	}
	if slices.Contains(names, name) {
		return fmt.Errorf("%w: category %q", models.ErrAlreadyExists, name)
	}
	return s.save(s.categoriesPath(), append(names, name))
}

func (s *Store) RemoveCategory(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{}
	if err := s.load(s.categoriesPath(), &names, true); err != nil {
		return err
	}
	i := slices.Index(names, name)
	if i < 0 {
		return fmt.Errorf("%w: category %q", models.ErrNotFound, name)
	}
	inUse, err := s.categoryInUse(name)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("%w: %q", models.ErrCategoryInUse, name)
	}
	return s.save(s.categoriesPath(), slices.Delete(names, i, i+1))
}

// RenameCategory rewrites the registry and then every user file that
// references the old name. The files are replaced one at a time, so a crash
// midway leaves some references under the old name.
func (s *Store) RenameCategory(ctx context.Context, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := []string{}
	if err := s.load(s.categoriesPath(), &names, true); err != nil {
		return err
	}
	i := slices.Index(names, oldName)
	if i < 0 {
		return fmt.Errorf("%w: category %q", models.ErrNotFound, oldName)
	}
	if slices.Contains(names, newName) {
		return fmt.Errorf("%w: category %q", models.ErrAlreadyExists, newName)
	}
	names[i] = newName
	if err := s.save(s.categoriesPath(), names); err != nil {
		return err
	}

	txFiles, err := filepath.Glob(filepath.Join(s.dir, "transactions_*.json"))
	if err != nil {
		return storageErr("list transaction files", err)
	}
	for _, path := range txFiles {
		records := []transactionRecord{}
		if err := s.load(path, &records, true); err != nil {
			return err
		}
		changed := false
		for j := range records {
			if records[j].Category == oldName {
				records[j].Category = newName
				changed = true
			}
		}
		if changed {
			if err := s.save(path, records); err != nil {
				return err
			}
		}
	}

	budgetFiles, err := filepath.Glob(filepath.Join(s.dir, "budgets_*.json"))
	if err != nil {
		return storageErr("list budget files", err)
	}
	for _, path := range budgetFiles {
		book := budgetFile{}
		if err := s.load(path, &book, true); err != nil {
			return err
		}
		changed := false
		for _, limits := range book {
			if limit, ok := limits[oldName]; ok {
				delete(limits, oldName)
				limits[newName] = limit
				changed = true
			}
		}
		if changed {
			if err := s.save(path, book); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *Store) CategoryInUse(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoryInUse(name)
}

// categoryInUse scans every user file. It expects s.mu to be held.
func (s *Store) categoryInUse(name string) (bool, error) {
	txFiles, err := filepath.Glob(filepath.Join(s.dir, "transactions_*.json"))
	if err != nil {
		return false, storageErr("list transaction files", err)
	}
	for _, path := range txFiles {
		records := []transactionRecord{}
		if err := s.load(path, &records, false); err != nil {
			return false, err
		}
		for _, r := range records {
			if r.Category == name {
				return true, nil
			}
		}
	}

	budgetFiles, err := filepath.Glob(filepath.Join(s.dir, "budgets_*.json"))
	if err != nil {
		return false, storageErr("list budget files", err)
	}
	for _, path := range budgetFiles {
		book := budgetFile{}
		if err := s.load(path, &book, false); err != nil {
			return false, err
		}
		for _, limits := range book {
			if _, ok := limits[name]; ok {
				return true, nil
			}
		}
	}

	return false, nil
}
