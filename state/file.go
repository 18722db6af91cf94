package state

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileStore keeps the last seen item in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path. The file is
// created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the saved item. A missing file means nothing has been saved
// yet and is not an error.
func (s *FileStore) Load() (*LastSeen, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var last LastSeen
	if err := json.Unmarshal(data, &last); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state file: %w", err)
	}

	return &last, nil
}

// Save writes the item, replacing any previous one.
func (s *FileStore) Save(last LastSeen) error {
	data, err := json.MarshalIndent(last, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}

	return nil
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}
