// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first (via godotenv), then
CLI flags, then environment variables for anything the flags left unset.

# Config Fields

  - Port: Server listen port (default: 3000)
  - StateFile: Snapshot file path (default: polls.json)
  - DatabaseURL: Optional; when set, the snapshot lives in a database
  - DatabaseType: sqlite or postgres (default: sqlite)
  - SessionTTLHours: Session lifetime in hours (default: 168)

# CLI Flags

	-p            Server port
	-f            State snapshot file
	-d            Database URL
	-t            Database type
	-session-ttl  Session lifetime in hours

# Environment Variables

Flags fall back to environment variables:

	PORT              → -p
	STATE_FILE        → -f
	DATABASE_URL      → -d
	DATABASE_TYPE     → -t
	SESSION_TTL_HOURS → -session-ttl

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - PORT or SESSION_TTL_HOURS are not integers
  - DatabaseType is anything other than sqlite or postgres
  - the session TTL is negative
*/
package cliparse
