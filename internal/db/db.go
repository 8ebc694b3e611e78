// Package db provides SQLite database initialization and access.
package db

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath returns the default database path: ~/.config/vv/vistaverde.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "vv", "vistaverde.db"), nil
}

// Open opens the records database at path, creating the file and its
// directory on first use, and brings the schema up to date.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	d, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	if err := d.Ping(); err != nil {
		return nil, abandon(d, fmt.Errorf("connecting to %s: %w", path, err))
	}
	if err := migrate(d); err != nil {
		return nil, abandon(d, fmt.Errorf("running migrations: %w", err))
	}

	slog.Debug("database ready", "path", path)
	return d, nil
}

// abandon closes a half-opened database and returns cause, noting any
// close failure alongside it.
func abandon(d *sql.DB, cause error) error {
	if err := d.Close(); err != nil {
		return fmt.Errorf("%w (also failed to close: %v)", cause, err)
	}
	return cause
}

// dsn builds the connection string. Pragmas go in the DSN so every pooled
// connection gets them, not just the first one. Transactions begin
// IMMEDIATE so a read-then-write sequence holds the write lock throughout.
func dsn(path string) string {
	params := url.Values{}
	params.Set("_foreign_keys", "on")
	params.Set("_journal_mode", "WAL")
	params.Set("_busy_timeout", "5000")
	params.Set("_txlock", "immediate")
	return path + "?" + params.Encode()
}
