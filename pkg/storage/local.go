package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage implements Storage for media files on the local filesystem.
type LocalStorage struct {
	basePath  string
	publicURL string
}

// LocalConfig holds configuration for local storage.
type LocalConfig struct {
	BasePath  string `mapstructure:"base_path"`
	PublicURL string `mapstructure:"public_url"` // Optional, e.g. a static file server in front of BasePath
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(cfg LocalConfig) (*LocalStorage, error) {
	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat base path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("base path %s is not a directory", absPath)
	}

	return &LocalStorage{
		basePath:  absPath,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// cleanKey normalises a key and rejects keys that would escape basePath.
func cleanKey(key string) (string, bool) {
	k := filepath.Clean(strings.TrimPrefix(key, "/"))
	if k == "." || k == ".." || strings.HasPrefix(k, ".."+string(os.PathSeparator)) {
		return "", false
	}
	return k, true
}

// Exists checks if a regular file with the given key exists.
func (s *LocalStorage) Exists(ctx context.Context, key string) (bool, error) {
	k, ok := cleanKey(key)
	if !ok {
		return false, nil
	}

	info, err := os.Stat(filepath.Join(s.basePath, k))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	return !info.IsDir(), nil
}

// GetURL returns the public URL of the file when one is configured, otherwise
// a file:// URL of its absolute path. expires is ignored.
func (s *LocalStorage) GetURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	k, ok := cleanKey(key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrFileNotFound, key)
	}

	if s.publicURL != "" {
		return s.publicURL + "/" + filepath.ToSlash(k), nil
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(filepath.Join(s.basePath, k))}).String(), nil
}

// LocalPath returns the filesystem path of a file:// URL produced by
// LocalStorage. Such files are not reachable by clients and have to be served
// by the catalog itself.
func LocalPath(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "file" || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}
