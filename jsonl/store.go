package jsonl

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/veritas"
)

// Compile-time interface verification.
var _ veritas.HistoryStore = (*Store)(nil)

// HistoryFile is the file name of the history inside the data directory.
const HistoryFile = "history.jsonl"

// Store persists HistoryItems as JSONL, oldest first.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the history. Returns empty slice if file doesn't exist.
func (s *Store) Load(ctx context.Context) ([]veritas.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) ([]veritas.HistoryItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	return decode[veritas.HistoryItem](f)
}

// Append adds item and rewrites the file with the newest HistoryLimit items.
func (s *Store) Append(ctx context.Context, item veritas.HistoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load(ctx)
	if err != nil {
		return err
	}
	return s.save(veritas.AppendHistory(items, item))
}

// Get returns the item with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*veritas.HistoryItem, error) {
	items, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, veritas.Errorf(veritas.ENOTFOUND, "history item %q not found", id)
}

// Clear deletes the history file.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// save replaces the file atomically, creating parent directories if needed.
func (s *Store) save(items []veritas.HistoryItem) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(dir, ".history-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	for _, item := range items {
		if err := encode(f, item); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), s.path)
}
