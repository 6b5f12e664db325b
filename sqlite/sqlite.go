// Package sqlite implements veritas.HistoryStore on an embedded SQLite
// database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/veritas"

	_ "modernc.org/sqlite"
)

// Compile-time interface verification.
var _ veritas.HistoryStore = (*Store)(nil)

// HistoryFile is the file name of the database inside the data directory.
const HistoryFile = "history.db"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS history (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    mode TEXT NOT NULL,
    input TEXT NOT NULL,
    result TEXT NOT NULL,
    created_at TEXT NOT NULL
);
`

// Store persists HistoryItems in a SQLite table.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns the stored items, oldest first.
func (s *Store) Load(ctx context.Context) ([]veritas.HistoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, mode, input, result, created_at FROM history ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var items []veritas.HistoryItem
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return items, nil
}

// Append inserts item and deletes everything but the newest HistoryLimit rows.
func (s *Store) Append(ctx context.Context, item veritas.HistoryItem) error {
	result, err := json.Marshal(item.Result())
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO history(id, mode, input, result, created_at) VALUES(?,?,?,?,?)`,
		item.ID,
		string(item.Mode),
		item.Input,
		string(result),
		item.Timestamp.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM history WHERE seq NOT IN (SELECT seq FROM history ORDER BY seq DESC LIMIT ?)`,
		veritas.HistoryLimit,
	); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Get returns the item with the given ID.
func (s *Store) Get(ctx context.Context, id string) (*veritas.HistoryItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, mode, input, result, created_at FROM history WHERE id = ?`, id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, veritas.Errorf(veritas.ENOTFOUND, "history item %q not found", id)
	}
	return item, err
}

// Clear deletes every row.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM history`); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(sc scanner) (*veritas.HistoryItem, error) {
	var (
		item      veritas.HistoryItem
		mode      string
		result    string
		createdAt string
	)
	if err := sc.Scan(&item.ID, &mode, &item.Input, &result, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan history: %w", err)
	}
	item.Mode = veritas.Mode(mode)

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("history %s: parse timestamp: %w", item.ID, err)
	}
	item.Timestamp = ts

	var target any = &item.Detection
	if item.Mode == veritas.ModeHumanize {
		target = &item.Humanize
	}
	if err := json.Unmarshal([]byte(result), target); err != nil {
		return nil, fmt.Errorf("history %s: decode result: %w", item.ID, err)
	}
	return &item, nil
}
