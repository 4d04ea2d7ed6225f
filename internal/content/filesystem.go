package content

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FileSystemStore is a filesystem-based implementation of the Store
// interface. Content lives as flat files under <root>/objects, one file
// per key.
type FileSystemStore struct {
	name       string
	root       string
	objectsDir string
}

// NewFileSystemStore creates a new filesystem store rooted at the given path.
func NewFileSystemStore(name, root string) (*FileSystemStore, error) {
	objectsDir := filepath.Join(root, "objects")
	if err := os.MkdirAll(objectsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create objects directory: %w", err)
	}

	return &FileSystemStore{
		name:       name,
		root:       root,
		objectsDir: objectsDir,
	}, nil
}

// Put stores content under the key using an atomic write
// (temp file + rename).
func (s *FileSystemStore) Put(key string, r io.Reader, size int64) error {
	destPath := filepath.Join(s.objectsDir, key)

	// Create temp file in the same directory to ensure atomic rename works
	tmpFile, err := os.CreateTemp(s.objectsDir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Get retrieves content by key and writes it to w.
func (s *FileSystemStore) Get(key string, w io.Writer) error {
	f, err := os.Open(filepath.Join(s.objectsDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("content not found: %s", key)
		}
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	return nil
}

// Exists reports whether content is stored under the key.
func (s *FileSystemStore) Exists(key string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.objectsDir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}
	return true, nil
}

// Validate verifies that the store directories are accessible.
func (s *FileSystemStore) Validate() error {
	for _, dir := range []string{s.root, s.objectsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("store directory not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("store path is not a directory: %s", dir)
		}
	}
	return nil
}

// Compile-time check that FileSystemStore implements the Store interface
var _ Store = (*FileSystemStore)(nil)
