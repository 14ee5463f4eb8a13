package persist

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"kbsearch/internal/domain"
)

// File persists snapshots as a single self-describing JSON document,
// human-readable and inspectable with standard tooling.
type File struct {
	path string
}

// NewFile creates a file adapter writing to the given path.
func NewFile(path string) *File { return &File{path: path} }

// Save writes the snapshot, creating parent directories as needed.
func (f *File) Save(_ context.Context, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o644)
}

// Load reads the snapshot back. A missing file is not an error.
func (f *File) Load(_ context.Context) (*Snapshot, bool, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, &domain.StoreLoadError{Path: f.path, Err: err}
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, &domain.StoreLoadError{Path: f.path, Err: err}
	}
	if err := snap.validate(); err != nil {
		return nil, false, &domain.StoreLoadError{Path: f.path, Err: err}
	}
	return &snap, true, nil
}
