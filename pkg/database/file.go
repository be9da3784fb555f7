package database

import (
	"fmt"
	"os"
	"path/filepath"

	"todotimer/pkg/engine"
	"todotimer/pkg/model"
)

// FileStore keeps the task collection as a JSON file
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by path; a leading tilde is expanded
func NewFileStore(path string) (*FileStore, error) {
	p, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}
	return &FileStore{path: p}, nil
}

// Load reads the collection. A missing file yields engine.ErrNoData.
func (f *FileStore) Load() ([]model.Task, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, engine.ErrNoData
	}
	if err != nil {
		return nil, err
	}
	return DecodeTasks(data)
}

// Save replaces the file contents through a temporary file
func (f *FileStore) Save(tasks []model.Task) error {
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	return os.Rename(tmp, f.path)
}
