// ABOUTME: SQLite implementation of the Store interface using modernc.org/sqlite
// ABOUTME: Every mutation is a single statement, so readers see pre- or post-commit state only

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/2389/briefcase/internal/entry"
)

const schemaVersion = "1"

// SQLiteStore implements the Store interface using a single SQLite file.
type SQLiteStore struct {
	path   string
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore creates a store backed by the SQLite file at path.
// No disk I/O happens until the first operation; the file and its parent
// directory are created on the first write.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path:   path,
		logger: slog.Default().With("component", "store", "backend", "sqlite"),
	}
}

// exists reports whether the database file is present on disk.
func (s *SQLiteStore) exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// ensureOpen opens the database connection and creates the schema.
// Idempotent; creates parent directories and the file if missing.
func (s *SQLiteStore) ensureOpen() error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent behavior
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return fmt.Errorf("enabling WAL mode: %w", err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("creating schema: %w", err)
	}

	s.db = db
	s.logger.Debug("SQLite store opened", "path", s.path)
	return nil
}

// createSchema creates the tables if they don't exist and seeds the
// persistent store identity.
func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			name       TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meta (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		return err
	}

	_, err := db.Exec(
		`INSERT OR IGNORE INTO meta (key, value) VALUES ('store_id', ?), ('schema_version', ?)`,
		uuid.New().String(), schemaVersion,
	)
	return err
}

// Close closes the database connection if one was opened
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	db := s.db
	s.db = nil
	return db.Close()
}

// Set upserts a variable. The upsert is a single statement, so a failed
// write leaves the prior value untouched.
func (s *SQLiteStore) Set(ctx context.Context, name, value string) error {
	if !entry.Valid(name) {
		return entry.ErrInvalidName
	}
	if err := s.ensureOpen(); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	query := `
		INSERT INTO entries (name, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := s.db.ExecContext(ctx, query, name, value, now, now); err != nil {
		return fmt.Errorf("upserting entry: %w", err)
	}

	s.logger.Debug("set entry", "name", name)
	return nil
}

// Get returns the value for name.
// Returns ErrNotFound if the entry doesn't exist.
func (s *SQLiteStore) Get(ctx context.Context, name string) (string, error) {
	if !entry.Valid(name) {
		return "", entry.ErrInvalidName
	}
	if !s.exists() {
		return "", ErrNotFound
	}
	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM entries WHERE name = ?`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying entry: %w", err)
	}

	return value, nil
}

// Remove deletes the entry for name.
// Returns ErrNotFound if the entry doesn't exist.
func (s *SQLiteStore) Remove(ctx context.Context, name string) error {
	if !entry.Valid(name) {
		return entry.ErrInvalidName
	}
	if !s.exists() {
		return ErrNotFound
	}
	if err := s.ensureOpen(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}

	s.logger.Debug("removed entry", "name", name)
	return nil
}

// List returns all entries. A store that was never created lists nothing.
func (s *SQLiteStore) List(ctx context.Context) ([]entry.Entry, error) {
	if !s.exists() {
		return nil, nil
	}
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		var e entry.Entry
		if err := rows.Scan(&e.Name, &e.Value); err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entry rows: %w", err)
	}

	return entries, nil
}

// Count returns the number of entries.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	if !s.exists() {
		return 0, nil
	}
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}

	return count, nil
}

// StoreID returns the identity persisted when the store was first created.
// Returns ErrStoreNotFound if the store does not exist yet.
func (s *SQLiteStore) StoreID(ctx context.Context) (string, error) {
	if !s.exists() {
		return "", ErrStoreNotFound
	}
	if err := s.ensureOpen(); err != nil {
		return "", err
	}

	var id string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = 'store_id'`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("store has no identity row")
	}
	if err != nil {
		return "", fmt.Errorf("querying store id: %w", err)
	}

	return id, nil
}

// Purge removes the database file and its WAL siblings.
// Returns ErrStoreNotFound if the store was never created.
func (s *SQLiteStore) Purge() error {
	if !s.exists() {
		return ErrStoreNotFound
	}

	if err := s.Close(); err != nil {
		return fmt.Errorf("closing database: %w", err)
	}

	if err := os.Remove(s.path); err != nil {
		return fmt.Errorf("removing database file: %w", err)
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(s.path + suffix); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing database sidecar: %w", err)
		}
	}

	s.logger.Info("purged store", "path", s.path)
	return nil
}
