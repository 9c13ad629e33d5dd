package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PublicPath is the route the disk driver's files are served under.
const PublicPath = "/uploads"

// DiskStorage keeps files in a local directory served by the HTTP server.
type DiskStorage struct {
	dir     string
	baseURL string
}

// NewDiskStorage creates dir if needed.
func NewDiskStorage(dir, publicURL string) (*DiskStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &DiskStorage{
		dir:     dir,
		baseURL: strings.TrimRight(publicURL, "/") + PublicPath,
	}, nil
}

// Dir is the directory files are written to.
func (s *DiskStorage) Dir() string {
	return s.dir
}

func (s *DiskStorage) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// Remove treats a missing file as already removed.
func (s *DiskStorage) Remove(_ context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *DiskStorage) URL(name string) string {
	return s.baseURL + "/" + name
}

func (s *DiskStorage) path(name string) (string, error) {
	switch {
	case name == "", name == ".", name == "..", name != filepath.Base(name):
		return "", fmt.Errorf("invalid upload name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
