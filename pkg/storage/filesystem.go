package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage persists files on disk under a base directory that is served
// publicly under a URL path prefix.
type LocalStorage struct {
	baseDir    string
	publicPath string
}

// NewLocalStorage ensures the base directory exists and returns a handle.
func NewLocalStorage(baseDir, publicPath string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads"
	}
	if publicPath == "" {
		publicPath = "/uploads"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir, publicPath: "/" + strings.Trim(publicPath, "/")}, nil
}

// SaveStream copies from reader into name under the base dir and returns the
// public URL path of the stored file.
func (s *LocalStorage) SaveStream(name string, r io.Reader) (string, error) {
	target, err := s.resolve(name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("prepare upload directory: %w", err)
	}
	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer file.Close() //nolint:errcheck
	if _, err := io.Copy(file, r); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("write upload stream: %w", err)
	}
	return path.Join(s.publicPath, filepath.ToSlash(name)), nil
}

// Delete removes a stored file given its public URL path. Missing files are
// not an error.
func (s *LocalStorage) Delete(publicURL string) error {
	name, ok := strings.CutPrefix(publicURL, s.publicPath+"/")
	if !ok {
		return fmt.Errorf("delete upload file: %q is outside %s", publicURL, s.publicPath)
	}
	target, err := s.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete upload file: %w", err)
	}
	return nil
}

// Dir exposes the base directory for static file serving.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

// PublicPath returns the URL prefix stored files are served under.
func (s *LocalStorage) PublicPath() string {
	return s.publicPath
}

func (s *LocalStorage) resolve(name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == "." || filepath.IsAbs(cleaned) || strings.HasPrefix(cleaned, "..") {
		return "", fmt.Errorf("invalid upload path %q", name)
	}
	return filepath.Join(s.baseDir, cleaned), nil
}
