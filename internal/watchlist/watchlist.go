// Package watchlist persists the flat list of watched users.
package watchlist

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps watched usernames in a SQLite table so the list survives
// across process invocations.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the watchlist database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist database: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS watched_users (
		username TEXT PRIMARY KEY,
		added_at INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("failed to initialize watchlist schema: %w", err)
	}
	return nil
}

// Add inserts a username; adding an already-watched user is a no-op.
func (s *Store) Add(ctx context.Context, username string) error {
	query := `INSERT INTO watched_users (username, added_at) VALUES (?, ?) ON CONFLICT(username) DO NOTHING`
	if _, err := s.db.ExecContext(ctx, query, username, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("failed to add watched user: %w", err)
	}
	return nil
}

// Remove deletes a username and reports whether it was present.
func (s *Store) Remove(ctx context.Context, username string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM watched_users WHERE username = ?`, username)
	if err != nil {
		return false, fmt.Errorf("failed to remove watched user: %w", err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns all watched usernames in the order they were added.
func (s *Store) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username FROM watched_users ORDER BY added_at, username`)
	if err != nil {
		return nil, fmt.Errorf("failed to list watched users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		users = append(users, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
