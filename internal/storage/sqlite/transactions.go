package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/famfin/fintrack/internal/models"
)

const transactionColumns = "seq, id, owner, date, amount, category, description, kind"

// CreateTransaction persists a new transaction and sets tx.Seq.
func (s *SQLiteStore) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, owner, date, amount, category, description, kind)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Owner, tx.Date.Format(models.DateLayout), tx.Amount.String(),
		tx.Category, tx.Description, string(tx.Kind),
	)
	if err != nil {
		return storageErr("insert transaction", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return storageErr("read transaction seq", err)
	}
	tx.Seq = seq

	return nil
}

// GetTransaction retrieves one of owner's transactions by ID.
func (s *SQLiteStore) GetTransaction(ctx context.Context, owner, id string) (*models.Transaction, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE owner = ? AND id = ?",
		owner, id,
	)

	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storageErr("get transaction", err)
	}
	return tx, nil
}

// ListTransactions retrieves all of owner's transactions, most recent first.
func (s *SQLiteStore) ListTransactions(ctx context.Context, owner string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+transactionColumns+" FROM transactions WHERE owner = ? ORDER BY date DESC, seq DESC",
		owner,
	)
	if err != nil {
		return nil, storageErr("list transactions", err)
	}
	defer rows.Close()

	txs := []models.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, storageErr("scan transaction", err)
		}
		txs = append(txs, *tx)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate transactions", err)
	}

	return txs, nil
}

// UpdateTransaction overwrites the mutable fields of a stored transaction.
func (s *SQLiteStore) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions
		 SET date = ?, amount = ?, category = ?, description = ?, kind = ?
		 WHERE owner = ? AND id = ?`,
		tx.Date.Format(models.DateLayout), tx.Amount.String(), tx.Category,
		tx.Description, string(tx.Kind), tx.Owner, tx.ID,
	)
	if err != nil {
		return storageErr("update transaction", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return storageErr("update transaction", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: transaction %s", models.ErrNotFound, tx.ID)
	}

	return nil
}

// DeleteTransaction removes one of owner's transactions.
func (s *SQLiteStore) DeleteTransaction(ctx context.Context, owner, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM transactions WHERE owner = ? AND id = ?", owner, id)
	if err != nil {
		return false, storageErr("delete transaction", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, storageErr("delete transaction", err)
	}

	return n > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row scanner) (*models.Transaction, error) {
	var (
		tx   models.Transaction
		date string
		kind string
	)
	if err := row.Scan(&tx.Seq, &tx.ID, &tx.Owner, &date, &tx.Amount, &tx.Category, &tx.Description, &kind); err != nil {
		return nil, err
	}

	d, err := models.ParseDate(date)
	if err != nil {
		return nil, err
	}
	tx.Date = d
	tx.Kind = models.Kind(kind)

	return &tx, nil
}
