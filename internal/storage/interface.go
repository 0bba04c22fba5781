package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

var ErrNotExist = errors.New("object does not exist")

// ObjectInfo describes a stored object
type ObjectInfo struct {
	Key       string
	SizeBytes int64
	ModTime   time.Time
}

// Storage is the blob store used for uploaded documents and backup files.
// Keys are slash separated and relative to the store root.
type Storage interface {
	// Save writes the reader under key, replacing any existing object, and
	// returns the number of bytes written
	Save(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns a reader for key or ErrNotExist
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	Exists(ctx context.Context, key string) (bool, int64, error)

	// List returns every object whose key starts with prefix
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
}
