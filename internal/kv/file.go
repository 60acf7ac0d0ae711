package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/podstock/stocksync/internal/adapter"
)

// FileStore is a Store backed by one file per key under a base directory.
// Writes go to a temporary file first and are renamed into place, so a
// reader never observes a partially written value.
type FileStore struct {
	dir string
	fs  adapter.FileSystem
}

// NewFileStore creates a file-backed store rooted at dir, creating it if needed
func NewFileStore(dir string, fs adapter.FileSystem) (*FileStore, error) {
	if err := fs.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create kv directory: %w", err)
	}
	return &FileStore{dir: dir, fs: fs}, nil
}

// Get returns the value stored under key, or ok=false when absent
func (s *FileStore) Get(key string) (string, bool) {
	data, err := s.fs.ReadFile(s.path(key))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Set durably stores value under key via a write-then-rename
func (s *FileStore) Set(key, value string) error {
	path := s.path(key)
	tmp := path + ".tmp"
	if err := s.fs.WriteFile(tmp, []byte(value), 0o600); err != nil {
		return fmt.Errorf("failed to write kv value: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to commit kv value: %w", err)
	}
	return nil
}

// Remove erases the value stored under key
func (s *FileStore) Remove(key string) error {
	err := s.fs.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove kv value: %w", err)
	}
	return nil
}

// path maps a key to a file name, flattening separators so a key can never
// escape the store directory.
func (s *FileStore) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(s.dir, safe)
}
