package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore saves profile photos on the local filesystem and serves them
// through the router's static uploads route.
type FileStore struct {
	dir     string
	baseURL string
}

// NewFileStore creates a FileStore rooted at dir. The directory is
// created on first use.
func NewFileStore(dir, baseURL string) *FileStore {
	return &FileStore{dir: dir, baseURL: baseURL}
}

// Save writes the photo bytes under users/<id>/ and returns its URL.
// One photo per user: a new upload replaces the previous one.
func (s *FileStore) Save(userID, extension string, data []byte) (string, error) {
	userDir := filepath.Join(s.dir, "users", userID)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := "profile." + extension
	path := filepath.Join(userDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write photo: %w", err)
	}

	return fmt.Sprintf("%s/users/%s/%s", s.baseURL, userID, name), nil
}
