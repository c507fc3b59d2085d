// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the poll server.

The poll server manages named polls (candidate lists with a permitted
integer score range) and the votes cast against them, behind a
cookie-based session layer.

# Starting the Server

	go run main.go

With no saved state the server bootstraps itself: it creates an admin
user, prints the one-time password to stdout, generates a cookie signing
key, and saves the initial snapshot.

# Configuration

Settings come from CLI flags, a .env file, or environment variables:

  - PORT (-p): Server port (default: 3000)
  - STATE_FILE (-f): Snapshot file path (default: polls.json)
  - DATABASE_URL (-d): Optional; store the snapshot in a database instead
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - SESSION_TTL_HOURS (-session-ttl): Session lifetime (default: 168)

# Architecture

The server keeps all state in memory behind per-collection locks and
persists it as one snapshot document on demand:

  - auth: credential hashing, tokens, signed cookie values
  - session: token → user/expiration store
  - state: the shared aggregate and its locking discipline
  - models: poll/vote domain types and API types
  - db: snapshot persistence (JSON file or sqlite/postgres)
  - handlers: HTTP request handlers
  - router: route definitions using Go 1.22+ routing
  - middleware: logging, CORS, JSON helpers, auth guard
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
