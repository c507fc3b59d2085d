// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db persists the application state snapshot.

# Gateway

The Gateway interface is the persistence contract: load one snapshot
document, save one snapshot document. The core tolerates Load failing
(it bootstraps instead) but a Save failure surfaces as a server error.

	type Gateway interface {
		Load() (*state.Snapshot, error)
		Save(*state.Snapshot) error
	}

Load returns ErrNoSnapshot when nothing has been saved yet.

# File Backend

FileStore keeps the snapshot as a JSON document on disk (default
polls.json). Writes go through a temp file plus rename so a crash never
leaves a truncated document.

	gw := db.NewFileStore(cfg.StateFile)

# SQL Backend

SQLStore keeps the same JSON document in a single-row table, for
deployments that already run a database:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	err = db.CreateSchema(conn)
	gw := db.NewSQLStore(conn)

Supported drivers:

  - sqlite (modernc.org/sqlite, cgo-free)
  - postgres (github.com/lib/pq)

CreateSchema is safe to call multiple times - it uses IF NOT EXISTS.
*/
package db
