package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/famfin/fintrack/internal/models"
	"github.com/famfin/fintrack/internal/storage"
)

// CategoryRegistry manages the global set of category names. Every name
// passes through models.NormalizeCategory before it is stored or compared.
type CategoryRegistry struct {
	store storage.CategoryStore
}

func NewCategoryRegistry(store storage.CategoryStore) *CategoryRegistry {
	return &CategoryRegistry{store: store}
}

// List returns category names in insertion order.
func (r *CategoryRegistry) List(ctx context.Context) ([]string, error) {
	return r.store.ListCategories(ctx)
}

// Exists reports whether the normalized name is registered.
func (r *CategoryRegistry) Exists(ctx context.Context, name string) (bool, error) {
	names, err := r.store.ListCategories(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(names, models.NormalizeCategory(name)), nil
}

// Resolve normalizes name and fails with models.ErrUnknownCategory if it is
// not registered.
func (r *CategoryRegistry) Resolve(ctx context.Context, name string) (string, error) {
	normalized := models.NormalizeCategory(name)
	if normalized == "" {
		return "", fmt.Errorf("%w: category must not be empty", models.ErrValidation)
	}
	ok, err := r.Exists(ctx, normalized)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownCategory, normalized)
	}
	return normalized, nil
}

// Add registers name and returns its normalized form.
func (r *CategoryRegistry) Add(ctx context.Context, name string) (string, error) {
	normalized := models.NormalizeCategory(name)
	if normalized == "" {
		return "", fmt.Errorf("%w: category must not be empty", models.ErrValidation)
	}
	if err := r.store.AddCategory(ctx, normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

// Remove deletes a category. A category still referenced by any transaction
// or budget is kept and models.ErrCategoryInUse is returned; rename it
// instead, or move its records first. The store checks references and
// deletes in one step.
func (r *CategoryRegistry) Remove(ctx context.Context, name string) error {
	return r.store.RemoveCategory(ctx, models.NormalizeCategory(name))
}

// Rename renames a category along with every transaction and budget that
// references it.
func (r *CategoryRegistry) Rename(ctx context.Context, oldName, newName string) error {
	oldNormalized := models.NormalizeCategory(oldName)
	newNormalized := models.NormalizeCategory(newName)
	if oldNormalized == "" || newNormalized == "" {
		return fmt.Errorf("%w: category must not be empty", models.ErrValidation)
	}

	if oldNormalized == newNormalized {
		ok, err := r.Exists(ctx, oldNormalized)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: category %q", models.ErrNotFound, oldNormalized)
		}
		return nil
	}

	return r.store.RenameCategory(ctx, oldNormalized, newNormalized)
}

// Seed adds names when the registry is empty and returns how many were added.
// A registry that already has entries is left alone, so removed defaults do
// not come back on restart.
func (r *CategoryRegistry) Seed(ctx context.Context, names []string) (int, error) {
	existing, err := r.store.ListCategories(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	added := 0
	seen := make(map[string]bool)
	for _, name := range names {
		normalized := models.NormalizeCategory(name)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		if err := r.store.AddCategory(ctx, normalized); err != nil {
			return added, fmt.Errorf("failed to seed category %q: %w", normalized, err)
		}
		added++
	}
	return added, nil
}
