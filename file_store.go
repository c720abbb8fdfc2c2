package classresult

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// FileStore implements ResultStore as a JSON array on disk
type FileStore struct {
	filepath string
}

// NewFileStore creates a new file-based result store
func NewFileStore(filepath string) *FileStore {
	return &FileStore{
		filepath: filepath,
	}
}

// Path returns the file the store reads and writes
func (f *FileStore) Path() string {
	return f.filepath
}

// Load reads the results from the file. If the file doesn't exist, returns no results.
func (f *FileStore) Load(ctx context.Context) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.filepath)
	if errors.Is(err, fs.ErrNotExist) {
		return []Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read results from file %s: %w", f.filepath, err)
	}

	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal results from file %s: %w", f.filepath, err)
	}
	if results == nil {
		results = []Result{}
	}

	return results, nil
}

// Save writes the results to the file, replacing its contents
func (f *FileStore) Save(ctx context.Context, results []Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if results == nil {
		results = []Result{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(f.filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write results to file %s: %w", f.filepath, err)
	}

	return nil
}
