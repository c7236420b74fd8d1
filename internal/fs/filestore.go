package fs

import (
	"fmt"
	"os"

	"pwsafe/internal/safe"
)

// OSFileStore implements safe.FileStore against the real filesystem.
// Safe files and temp files are written with owner-only permissions.
type OSFileStore struct{}

var _ safe.FileStore = (*OSFileStore)(nil)

// NewOSFileStore creates a new OSFileStore.
func NewOSFileStore() *OSFileStore {
	return &OSFileStore{}
}

// Exists reports whether a file is present at path.
func (s *OSFileStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadableNonEmpty reports whether path names a readable regular file with
// at least one byte of content.
func (s *OSFileStore) ReadableNonEmpty(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// ReadFile returns the full contents of path.
func (s *OSFileStore) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path with mode 0600.
func (s *OSFileStore) WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReplaceAtomic renames tmpPath over finalPath. Rename within one directory
// is atomic on POSIX filesystems, so readers never observe a partial file.
func (s *OSFileStore) ReplaceAtomic(tmpPath, finalPath string) error {
	if err := os.Rename(tmpPath, finalPath); err != nil {
		return fmt.Errorf("renaming %s over %s: %w", tmpPath, finalPath, err)
	}
	return nil
}

// Remove deletes path. A missing file is not an error.
func (s *OSFileStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
