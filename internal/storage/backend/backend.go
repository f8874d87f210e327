// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"fmt"
	"log/slog"

	"github.com/famfin/fintrack/internal/config"
	"github.com/famfin/fintrack/internal/storage"
	"github.com/famfin/fintrack/internal/storage/jsonfile"
	"github.com/famfin/fintrack/internal/storage/memory"
	"github.com/famfin/fintrack/internal/storage/sqlite"
)

// Open returns the store for cfg.DataBackend. The caller owns the store and
// must Close it.
func Open(cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	switch cfg.DataBackend {
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store at %s: %w", cfg.DBPath, err)
		}
		logger.Info("Storage initialized", "backend", cfg.DataBackend, "database", cfg.DBPath)
		return store, nil
	case config.BackendJSONFile:
		store, err := jsonfile.New(cfg.DataDir, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open json store at %s: %w", cfg.DataDir, err)
		}
		logger.Info("Storage initialized", "backend", cfg.DataBackend, "dir", cfg.DataDir)
		return store, nil
	case config.BackendMemory:
		logger.Warn("Storage is in memory; data is lost on exit", "backend", cfg.DataBackend)
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", cfg.DataBackend)
	}
}
