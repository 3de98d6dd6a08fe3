package storage

import (
	"context"
	"errors"
	"time"
)

// ErrFileNotFound is returned when the requested media file does not exist.
var ErrFileNotFound = errors.New("file not found")

// Storage resolves film media files for read access. Files are uploaded
// out of band; the catalog only checks and links them.
type Storage interface {
	// Exists checks if content with the given key exists.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a URL for accessing the content.
	// For local storage, this returns the public URL or a file:// URL.
	// For S3, this returns a presigned URL valid for the specified duration.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
