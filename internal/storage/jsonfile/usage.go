package jsonfile

import (
	"context"
	"time"

	"github.com/famfin/fintrack/internal/models"
)

type usageRecord struct {
	Feature string    `json:"feature"`
	At      time.Time `json:"at"`
}

func (s *Store) RecordUsage(ctx context.Context, username string, entry models.UsageEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.userFile("usage", username)
	records := []usageRecord{}
	if err := s.load(path, &records, true); err != nil {
		return err
	}
	return s.save(path, append(records, usageRecord{Feature: entry.Feature, At: entry.At}))
}

func (s *Store) ListUsage(ctx context.Context, username string) ([]models.UsageEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := []usageRecord{}
	if err := s.load(s.userFile("usage", username), &records, false); err != nil {
		return nil, err
	}
	entries := make([]models.UsageEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, models.UsageEntry{Feature: r.Feature, At: r.At})
	}
	return entries, nil
}
