// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/poll-server/state"
)

// Open connects to the snapshot database. databaseType selects the
// driver: "sqlite" (modernc, cgo-free) or "postgres" (lib/pq).
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	var driver string
	switch databaseType {
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unknown database type %q", databaseType)
	}

	conn, err := sql.Open(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return conn, nil
}

// CreateSchema creates the snapshot table.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB) error {
	_, err := conn.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Whole-state snapshot document, one row only
CREATE TABLE IF NOT EXISTS state_snapshot (
    id INTEGER PRIMARY KEY,
    payload TEXT NOT NULL,
    saved_at TIMESTAMP NOT NULL
);
`

// snapshotRow is the fixed id of the single snapshot row.
const snapshotRow = 1

// SQLStore persists the snapshot document in a single database row.
// Works against sqlite and postgres; the SQL sticks to the shared subset.
type SQLStore struct {
	conn *sql.DB
}

// NewSQLStore wraps an open connection whose schema already exists.
func NewSQLStore(conn *sql.DB) *SQLStore {
	return &SQLStore{conn: conn}
}

// Load reads and decodes the snapshot row. No row yet is ErrNoSnapshot.
func (s *SQLStore) Load() (*state.Snapshot, error) {
	var payload string
	err := s.conn.QueryRow(`SELECT payload FROM state_snapshot WHERE id = $1`, snapshotRow).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot row: %w", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot payload: %w", err)
	}
	return &snap, nil
}

// Save upserts the snapshot row.
func (s *SQLStore) Save(snap *state.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.conn.Exec(`
		INSERT INTO state_snapshot (id, payload, saved_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET payload = excluded.payload, saved_at = excluded.saved_at
	`, snapshotRow, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write snapshot row: %w", err)
	}
	return nil
}
