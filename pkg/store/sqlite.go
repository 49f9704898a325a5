package store

import (
	"context"
	"database/sql"

	_ "github.com/glebarez/go-sqlite"
	"github.com/pkg/errors"
)

// SQLite keeps every key as a row of a single kv table.
type SQLite struct {
	db *sql.DB
}

var _ KV = (*SQLite)(nil)

// NewSQLite opens the database file at path (":memory:" works too).
func NewSQLite(path string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("store: sqlite path required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "store: open sqlite")
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)
	return NewSQLiteWithDB(db)
}

// NewSQLiteWithDB prepares an existing handle.
func NewSQLiteWithDB(db *sql.DB) (*SQLite, error) {
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, errors.Wrap(err, "store: set busy_timeout")
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		return nil, errors.Wrap(err, "store: set synchronous mode")
	}
	if _, err := db.Exec("CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)"); err != nil {
		return nil, errors.Wrap(err, "store: create kv table")
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "store: read %q", key)
	}
	return v, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	if err != nil {
		return errors.Wrapf(err, "store: write %q", key)
	}
	return nil
}

func (s *SQLite) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv"); err != nil {
		return errors.Wrap(err, "store: clear")
	}
	return nil
}

func (s *SQLite) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key FROM kv ORDER BY key")
	if err != nil {
		return nil, errors.Wrap(err, "store: list keys")
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, errors.Wrap(err, "store: scan key")
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
