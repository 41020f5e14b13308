// Package store handles SQLite persistence of user settings.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/keytype/internal/keyboard"

	_ "modernc.org/sqlite" // SQLite driver.
)

// LayoutKey is the settings key holding the active keyboard layout.
const LayoutKey = "layout"

// ErrNotFound is returned by Get when a setting has never been written.
var ErrNotFound = errors.New("setting not found")

// Store wraps SQLite access for settings.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

// Layout returns the persisted layout. The boolean is false when no layout
// has been saved yet.
func (s *Store) Layout(ctx context.Context) (keyboard.Layout, bool, error) {
	value, err := s.Get(ctx, LayoutKey)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	layout, err := keyboard.ParseLayout(value)
	if err != nil {
		return "", false, fmt.Errorf("stored layout: %w", err)
	}
	return layout, true, nil
}

// SetLayout persists the active layout.
func (s *Store) SetLayout(ctx context.Context, layout keyboard.Layout) error {
	if !layout.Valid() {
		return fmt.Errorf("%w: %q", keyboard.ErrUnknownLayout, string(layout))
	}
	return s.Set(ctx, LayoutKey, layout.String())
}
