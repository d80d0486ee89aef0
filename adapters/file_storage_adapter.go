package adapters

import (
	"encoding/json"
	"errors"
	"os"
)

// FileStorageAdapter is the default storage adapter implementation using file system.
// Stores records as JSON in a file.
type FileStorageAdapter struct {
	filepath string
}

// Ensure FileStorageAdapter implements StorageAdapter interface
var _ StorageAdapter = (*FileStorageAdapter)(nil)

// NewFileStorageAdapter creates a new FileStorageAdapter instance.
//
// Parameters:
//   - filepath: Path to the file where records will be stored
func NewFileStorageAdapter(filepath string) StorageAdapter {
	return &FileStorageAdapter{filepath: filepath}
}

// Save persists records to a JSON file.
func (f *FileStorageAdapter) Save(records []Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return os.WriteFile(f.filepath, data, 0644)
}

// Load retrieves records from a JSON file.
// Returns empty slice if file doesn't exist.
func (f *FileStorageAdapter) Load() ([]Record, error) {
	data, err := os.ReadFile(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, err
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Clear removes the storage file. A missing file is not an error.
func (f *FileStorageAdapter) Clear() error {
	if err := os.Remove(f.filepath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
