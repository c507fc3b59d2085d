// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/danielhkuo/poll-server/state"
)

// ErrNoSnapshot is returned by Load when no snapshot has been saved yet.
// Callers bootstrap a fresh state instead.
var ErrNoSnapshot = errors.New("no saved snapshot")

// Gateway persists the whole application state as one snapshot document.
// The core never does I/O itself; it hands a snapshot to a Gateway and
// tolerates Load failing.
type Gateway interface {
	Load() (*state.Snapshot, error)
	Save(*state.Snapshot) error
}

// FileStore is the JSON-file gateway. The snapshot lives in a single
// document at Path.
type FileStore struct {
	Path string
}

// NewFileStore creates a file-backed gateway at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads and decodes the snapshot file. A missing file is
// ErrNoSnapshot; unreadable or undecodable content is an error the
// caller treats the same way.
func (f *FileStore) Load() (*state.Snapshot, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var snap state.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode state file: %w", err)
	}
	return &snap, nil
}

// Save encodes the snapshot and writes it via a temp file plus rename, so
// a crash mid-write never leaves a truncated document behind.
func (f *FileStore) Save(snap *state.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	dir := filepath.Dir(f.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
