// Package jsonfile implements storage.Store on plain JSON files, one set of
// files per user:
//
//	credentials.json            username -> credential record
//	categories.json             ordered list of category names
//	transactions_<user>.json    the user's ledger
//	budgets_<user>.json         period -> category -> limit
//	usage_<user>.json           the user's usage log
//
// Every write is a whole-file read-modify-rewrite. Writes within one process
// are serialized by a mutex, but two processes sharing the directory can
// still lose an update (last writer wins). Use the sqlite backend when more
// than one process writes.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/famfin/fintrack/internal/storage"
)

var _ storage.Store = (*Store)(nil)

const (
	credentialsFile = "credentials.json"
	categoriesFile  = "categories.json"
)

// Store implements storage.Store on a directory of JSON files.
type Store struct {
	mu     sync.Mutex
	dir    string
	logger *slog.Logger
}

// New creates the data directory if needed and returns a store rooted there.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Close is a no-op; files are closed after every operation.
func (s *Store) Close() error { return nil }

func (s *Store) userFile(kind, owner string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", kind, url.PathEscape(owner)))
}

// load decodes path into v, which must be a non-nil pointer. A missing file
// leaves v untouched. A corrupt file, including one that is valid JSON but
// fails to decode partway through, also leaves v untouched and is logged; if
// forWrite is set it is moved aside first so the rewrite that follows does not
// destroy it.
func (s *Store) load(path string, v any, forWrite bool) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return storageErr("read "+filepath.Base(path), err)
	}
	if len(data) == 0 {
		return nil
	}

	fresh := reflect.New(reflect.TypeOf(v).Elem())
	if err := json.Unmarshal(data, fresh.Interface()); err == nil {
		if !fresh.Elem().IsZero() {
			reflect.ValueOf(v).Elem().Set(fresh.Elem())
		}
	} else {
		s.logger.Warn("Corrupt data file treated as empty", "path", path, "error", err)
		if forWrite {
			backup := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
			if rerr := os.Rename(path, backup); rerr != nil {
				return storageErr("move corrupt file aside", rerr)
			}
			s.logger.Warn("Corrupt data file moved aside", "path", path, "backup", backup)
		}
	}
	return nil
}

// save writes v to path atomically via a temp file and rename.
func (s *Store) save(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return storageErr("encode "+filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return storageErr("create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return storageErr("write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		return storageErr("close temp file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return storageErr("replace "+filepath.Base(path), err)
	}
	return nil
}
