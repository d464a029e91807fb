package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists each credential entry as its own file under a
// directory, one file per key. Writes go through a temp file + rename
// so a crash never leaves a partial entry behind.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed credential store rooted at dir
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key Key) string {
	return filepath.Join(s.dir, string(key))
}

// Get reads one credential entry
func (s *FileStore) Get(ctx context.Context, key Key) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return string(data), nil
}

// Set writes one credential entry atomically
func (s *FileStore) Set(ctx context.Context, key Key, value string) error {
	tmp, err := os.CreateTemp(s.dir, string(key)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to chmod %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", key, err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// Delete removes one credential entry; missing entries are not an error
func (s *FileStore) Delete(ctx context.Context, key Key) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Clear removes all credential entries
func (s *FileStore) Clear(ctx context.Context) error {
	for _, key := range Keys {
		if err := s.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}
