// Package cache provides the site's persistent cache: raw resource slots
// (the last successfully fetched bibliography text) and GitHub star counts.
package cache

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a cache row does not exist.
var ErrNotFound = errors.New("not found in cache")

// DB wraps a SQLite cache database.
type DB struct {
	db *sql.DB
}

// OpenDB opens or creates the cache database at the given path, creating
// parent directories as needed.
func OpenDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the cache schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- Raw resource slots, one row per named resource
		CREATE TABLE IF NOT EXISTS resources (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			fetched_at INTEGER NOT NULL
		);

		-- GitHub star counts by owner/repo
		CREATE TABLE IF NOT EXISTS stars (
			repo TEXT PRIMARY KEY,
			count INTEGER NOT NULL,
			fetched_at INTEGER NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}

// PutResource stores (or replaces) a raw resource body under a name.
func (d *DB) PutResource(name, body string) error {
	_, err := d.db.Exec(
		`INSERT INTO resources (name, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		name, body, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("storing resource %s: %w", name, err)
	}
	return nil
}

// GetResource returns the stored body for a named resource and when it was
// fetched. Returns ErrNotFound when the slot is empty.
func (d *DB) GetResource(name string) (string, time.Time, error) {
	var body string
	var fetchedAt int64
	err := d.db.QueryRow(
		`SELECT body, fetched_at FROM resources WHERE name = ?`, name,
	).Scan(&body, &fetchedAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, ErrNotFound
	}
	if err != nil {
		return "", time.Time{}, fmt.Errorf("reading resource %s: %w", name, err)
	}
	return body, time.Unix(fetchedAt, 0), nil
}

// PutStars stores (or replaces) the star count for an owner/repo.
func (d *DB) PutStars(repo string, count int) error {
	_, err := d.db.Exec(
		`INSERT INTO stars (repo, count, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(repo) DO UPDATE SET count = excluded.count, fetched_at = excluded.fetched_at`,
		repo, count, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("storing stars for %s: %w", repo, err)
	}
	return nil
}

// GetStars returns the cached star count for an owner/repo and when it was
// fetched. Returns ErrNotFound when no row exists.
func (d *DB) GetStars(repo string) (int, time.Time, error) {
	var count int
	var fetchedAt int64
	err := d.db.QueryRow(
		`SELECT count, fetched_at FROM stars WHERE repo = ?`, repo,
	).Scan(&count, &fetchedAt)
	if err == sql.ErrNoRows {
		return 0, time.Time{}, ErrNotFound
	}
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("reading stars for %s: %w", repo, err)
	}
	return count, time.Unix(fetchedAt, 0), nil
}
