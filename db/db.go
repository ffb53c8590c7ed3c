// ABOUTME: SQLite-backed key-value store for the portfolio document
// ABOUTME: Opens the database with WAL mode and implements the store KV interface
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harperreed/leasebook/store"
)

// StateStore keeps documents in a single sqlite table.
type StateStore struct {
	db *sql.DB
}

// OpenDatabase opens the sqlite file at path, creating directories and the
// schema as needed.
func OpenDatabase(path string) (*sql.DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}

	// Single writer avoids "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenStateStore opens the sqlite file and wraps it as a KV store.
func OpenStateStore(path string) (*StateStore, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}
	return &StateStore{db: db}, nil
}

func (s *StateStore) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM app_state WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return value, err
}

func (s *StateStore) Set(key, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO app_state (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, string(key), value, time.Now().UTC())
	return err
}

func (s *StateStore) Delete(key []byte) error {
	_, err := s.db.Exec(`DELETE FROM app_state WHERE key = ?`, string(key))
	return err
}

// UpdatedAt reports when the key was last written.
func (s *StateStore) UpdatedAt(key []byte) (time.Time, error) {
	var ts time.Time
	err := s.db.QueryRow(`SELECT updated_at FROM app_state WHERE key = ?`, string(key)).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, store.ErrNotFound
	}
	return ts, err
}

func (s *StateStore) Close() error {
	return s.db.Close()
}

var (
	_ store.KV      = (*StateStore)(nil)
	_ store.Stamped = (*StateStore)(nil)
)
