// Package store provides the durable backends for committed canvas history.
// Both backends rewrite the whole snapshot on every save; history is small
// (one drawing session) and wholesale writes keep recovery trivial.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"CollabCanvas/internal/state"
)

// FileStore persists history as a single JSON array on disk, canvas.json
// style. An absent file means empty history.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Load() ([]state.Stroke, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("could not read %s: %w", f.path, err)
	}
	var strokes []state.Stroke
	if err := json.Unmarshal(data, &strokes); err != nil {
		return nil, fmt.Errorf("could not parse %s: %w", f.path, err)
	}
	return strokes, nil
}

func (f *FileStore) Save(strokes []state.Stroke) error {
	if strokes == nil {
		strokes = []state.Stroke{}
	}
	data, err := json.MarshalIndent(strokes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o644)
}

// Reset deletes the file; a missing file is already reset.
func (f *FileStore) Reset() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
