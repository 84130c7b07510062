// Package store provides persistence for the countdown end time.
//
// There is exactly one slot, stored under EndTimeKey. It holds the wall-clock
// time at which the running timer reaches zero and is absent whenever no timer
// is running. Starting or resuming a timer overwrites the slot, so only one
// timer can be tracked at a time; a second timer silently replaces the first.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// EndTimeKey is the single well-known key for the stored end time.
const EndTimeKey = "timerEndTime"

// EndTimeStore persists the single end-time slot.
type EndTimeStore interface {
	// Set overwrites the slot with end.
	Set(end time.Time) error
	// Get returns the stored end time; ok is false when the slot is empty.
	Get() (end time.Time, ok bool, err error)
	// Clear empties the slot. Clearing an empty slot is not an error.
	Clear() error
}

// Store is the SQLite-backed EndTimeStore.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// WAL lets "blanktimer status" read while a running timer writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer at a time
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value REAL NOT NULL,
		updated_at DATETIME NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Set stores end as a floating-point Unix timestamp.
func (s *Store) Set(end time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		EndTimeKey, toUnixSeconds(end), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set end time: %w", err)
	}
	return nil
}

// Get retrieves the stored end time.
func (s *Store) Get() (time.Time, bool, error) {
	var value float64
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, EndTimeKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("query end time: %w", err)
	}
	return fromUnixSeconds(value), true, nil
}

// Clear deletes the stored end time.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, EndTimeKey); err != nil {
		return fmt.Errorf("clear end time: %w", err)
	}
	return nil
}

func toUnixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(v float64) time.Time {
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(math.Round(frac*float64(time.Second))))
}
