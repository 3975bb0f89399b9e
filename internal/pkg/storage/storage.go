package storage

import (
	"context"
	"io"
	"time"
)

// FileStorage abstracts where uploaded files live. Paths are the keys the
// backend returned from Upload; callers must not assume they are filesystem
// paths.
type FileStorage interface {
	// Upload stores a file and returns its storage key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Delete removes a file; deleting a missing file is not an error
	Delete(ctx context.Context, path string) error

	// GetURL resolves a storage key to a URL valid for at least expiry
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks whether a key is present
	Exists(ctx context.Context, path string) (bool, error)
}
