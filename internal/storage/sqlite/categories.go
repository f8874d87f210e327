package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/famfin/fintrack/internal/models"
)

// ListCategories returns all category names in insertion order.
func (s *SQLiteStore) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM categories ORDER BY seq")
	if err != nil {
		return nil, storageErr("list categories", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storageErr("scan category", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate categories", err)
	}

	return names, nil
}

// AddCategory inserts a category name.
func (s *SQLiteStore) AddCategory(ctx context.Context, name string) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO categories (name) VALUES (?) ON CONFLICT (name) DO NOTHING",
		name,
	)
	if err != nil {
		return storageErr("add category", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("add category", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: category %q", models.ErrAlreadyExists, name)
	}

	return nil
}

// RemoveCategory deletes a category name unless a transaction or budget
// still references it.
func (s *SQLiteStore) RemoveCategory(ctx context.Context, name string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	inUse, err := categoryInUse(ctx, tx, name)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("%w: %q", models.ErrCategoryInUse, name)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM categories WHERE name = ?", name)
	if err != nil {
		return storageErr("remove category", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("remove category", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: category %q", models.ErrNotFound, name)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}

	return nil
}

// RenameCategory renames a category and every reference to it.
// The registry row keeps its seq, so the list order is unchanged.
func (s *SQLiteStore) RenameCategory(ctx context.Context, oldName, newName string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin transaction", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories WHERE name = ?", newName).Scan(&exists)
	if err != nil {
		return storageErr("check category", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: category %q", models.ErrAlreadyExists, newName)
	}

	res, err := tx.ExecContext(ctx, "UPDATE categories SET name = ? WHERE name = ?", newName, oldName)
	if err != nil {
		return storageErr("rename category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("rename category", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: category %q", models.ErrNotFound, oldName)
	}

	if _, err := tx.ExecContext(ctx, "UPDATE transactions SET category = ? WHERE category = ?", newName, oldName); err != nil {
		return storageErr("rename transaction categories", err)
	}
	if _, err := tx.ExecContext(ctx, "UPDATE budgets SET category = ? WHERE category = ?", newName, oldName); err != nil {
		return storageErr("rename budget categories", err)
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit transaction", err)
	}

	return nil
}

// CategoryInUse reports whether any transaction or budget references name.
func (s *SQLiteStore) CategoryInUse(ctx context.Context, name string) (bool, error) {
	return categoryInUse(ctx, s.db, name)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func categoryInUse(ctx context.Context, q queryRower, name string) (bool, error) {
	var inUse bool
	err := q.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM transactions WHERE category = ?)
		    OR EXISTS (SELECT 1 FROM budgets WHERE category = ?)
	`, name, name).Scan(&inUse)
	if err != nil {
		return false, storageErr("check category usage", err)
	}
	return inUse, nil
}
