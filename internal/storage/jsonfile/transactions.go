package jsonfile

import (
	"context"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/famfin/fintrack/internal/models"
)

// transactionRecord is the persisted shape of a transaction.
type transactionRecord struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Kind        models.Kind     `json:"kind"`
	Seq         int64           `json:"seq"`
}

func toRecord(tx *models.Transaction) transactionRecord {
	return transactionRecord{
		ID:          tx.ID,
		Date:        tx.Date.Format(models.DateLayout),
		Amount:      tx.Amount,
		Category:    tx.Category,
		Description: tx.Description,
		Kind:        tx.Kind,
		Seq:         tx.Seq,
	}
}

func (r transactionRecord) toModel(owner string) (models.Transaction, error) {
	date, err := models.ParseDate(r.Date)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		ID:          r.ID,
		Owner:       owner,
		Date:        date,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description,
		Kind:        r.Kind,
		Seq:         r.Seq,
	}, nil
}

func (s *Store) loadTransactions(owner string, forWrite bool) ([]transactionRecord, error) {
	records := []transactionRecord{}
	if err := s.load(s.userFile("transactions", owner), &records, forWrite); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadTransactions(tx.Owner, true)
	if err != nil {
		return err
	}

	var maxSeq int64
	for _, r := range records {
		maxSeq = max(maxSeq, r.Seq)
	}
	tx.Seq = maxSeq + 1

	return s.save(s.userFile("transactions", tx.Owner), append(records, toRecord(tx)))
}

func (s *Store) GetTransaction(ctx context.Context, owner, id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadTransactions(owner, false)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			tx, err := r.toModel(owner)
			if err != nil {
				return nil, storageErr("decode transaction", err)
			}
			return &tx, nil
		}
	}
	return nil, nil
}

func (s *Store) ListTransactions(ctx context.Context, owner string) ([]models.Transaction, error) {
	s.mu.Lock()
	records, err := s.loadTransactions(owner, false)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	txs := make([]models.Transaction, 0, len(records))
	for _, r := range records {
		tx, err := r.toModel(owner)
		if err != nil {
			s.logger.Warn("Skipping unreadable transaction", "owner", owner, "id", r.ID, "error", err)
			continue
		}
		txs = append(txs, tx)
	}
	models.SortTransactions(txs)
	return txs, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadTransactions(tx.Owner, true)
	if err != nil {
		return err
	}
	for i := range records {
		if records[i].ID == tx.ID {
			updated := toRecord(tx)
			updated.Seq = records[i].Seq
			records[i] = updated
			return s.save(s.userFile("transactions", tx.Owner), records)
		}
	}
	return fmt.Errorf("%w: transaction %s", models.ErrNotFound, tx.ID)
}

func (s *Store) DeleteTransaction(ctx context.Context, owner, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.loadTransactions(owner, true)
	if err != nil {
		return false, err
	}
	i := slices.IndexFunc(records, func(r transactionRecord) bool { return r.ID == id })
	if i < 0 {
		return false, nil
	}
	if err := s.save(s.userFile("transactions", owner), slices.Delete(records, i, i+1)); err != nil {
		return false, err
	}
	return true, nil
}
