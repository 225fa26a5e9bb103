// Package cache implements a durable key/value store with lazy, read-time
// TTL expiry. Each CLI command runs in a fresh process, so entries live in a
// SQLite database to survive across invocations.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is a SQLite-backed cache. Keys are deterministic strings built by
// the caller from the operation name and its effective parameters, so two
// logically identical queries always hit the same entry.
type Store struct {
	db *sql.DB

	// now is a clock hook so tests can exercise expiry without sleeping.
	now func() time.Time
}

// Open opens (or creates) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS cache_entries (
		key TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		stored_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	return nil
}

// Get returns the payload stored under key if it is younger than ttl.
// The TTL is supplied by the caller at lookup time, not baked into the
// entry, so different call sites can treat the same stored data as fresher
// or staler. An expired or absent entry returns ok=false, never an error.
func (s *Store) Get(ctx context.Context, key string, ttl time.Duration) ([]byte, bool, error) {
	var payload []byte
	var storedAt int64

	query := `SELECT payload, stored_at FROM cache_entries WHERE key = ?`
	err := s.db.QueryRowContext(ctx, query, key).Scan(&payload, &storedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	age := s.now().Sub(time.UnixMilli(storedAt))
	if age > ttl {
		return nil, false, nil
	}
	return payload, true, nil
}

// Set stores payload under key, replacing any previous entry.
func (s *Store) Set(ctx context.Context, key string, payload []byte) error {
	query := `
	INSERT INTO cache_entries (key, payload, stored_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, stored_at = excluded.stored_at
	`
	_, err := s.db.ExecContext(ctx, query, key, payload, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry and reports how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cache_entries`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared entries: %w", err)
	}
	return count, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
