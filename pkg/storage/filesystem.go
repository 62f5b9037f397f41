package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// ArchiveStorage keeps plain-file copies of rendered documents under a base
// directory. The database stays the source of truth; the archive exists so
// operators can grab artifacts without decoding data URIs.
type ArchiveStorage struct {
	baseDir string
}

// NewArchiveStorage ensures the base directory exists and returns a handle.
func NewArchiveStorage(baseDir string) (*ArchiveStorage, error) {
	if baseDir == "" {
		baseDir = "./archive"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &ArchiveStorage{baseDir: baseDir}, nil
}

// Save writes the given bytes under the base dir. The filename is reduced
// to its base component so callers cannot escape the archive root.
func (s *ArchiveStorage) Save(filename string, data []byte) (string, error) {
	name := filepath.Base(filename)
	path := filepath.Join(s.baseDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}
	return name, nil
}

// Open returns a read-only handle for an archived file.
func (s *ArchiveStorage) Open(filename string) (*os.File, error) {
	path := filepath.Join(s.baseDir, filepath.Base(filename))
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open archive file: %w", err)
	}
	return file, nil
}

// Delete removes an archived file if present.
func (s *ArchiveStorage) Delete(filename string) error {
	path := filepath.Join(s.baseDir, filepath.Base(filename))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete archive file: %w", err)
	}
	return nil
}

// Path exposes the resolved on-disk location for a stored name.
func (s *ArchiveStorage) Path(filename string) string {
	return filepath.Join(s.baseDir, filepath.Base(filename))
}
