package sqlite

import (
	"context"
	"time"

	"github.com/famfin/fintrack/internal/models"
)

// RecordUsage appends one entry to username's usage log.
func (s *SQLiteStore) RecordUsage(ctx context.Context, username string, entry models.UsageEntry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO usage_log (username, feature, used_at) VALUES (?, ?, ?)",
		username, entry.Feature, entry.At.Unix(),
	)
	if err != nil {
		return storageErr("record usage", err)
	}
	return nil
}

// ListUsage returns username's usage log in the order it was written.
func (s *SQLiteStore) ListUsage(ctx context.Context, username string) ([]models.UsageEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT feature, used_at FROM usage_log WHERE username = ? ORDER BY seq",
		username,
	)
	if err != nil {
		return nil, storageErr("list usage", err)
	}
	defer rows.Close()

	entries := []models.UsageEntry{}
	for rows.Next() {
		var e models.UsageEntry
		var usedAt int64
		if err := rows.Scan(&e.Feature, &usedAt); err != nil {
			return nil, storageErr("scan usage", err)
		}
		e.At = time.Unix(usedAt, 0).UTC()
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate usage", err)
	}

	return entries, nil
}
