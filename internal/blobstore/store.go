package blobstore

import (
	"context"
	"errors"
)

// ErrNotFound reports that a blob (or its container) does not exist. It is
// a distinguished, non-fatal outcome: callers use it to derive state, never
// to abort a run.
var ErrNotFound = errors.New("blob not found")

// Store describes the blob operations the pipeline needs. Implementations
// must treat uploads as overwrite-if-exists and surface missing blobs via
// ErrNotFound.
type Store interface {
	// List enumerates all blob names in a container in a stable order.
	List(ctx context.Context, container string) ([]string, error)
	// Size returns the byte size of a blob, or ErrNotFound.
	Size(ctx context.Context, container, name string) (int64, error)
	// Download returns the full contents of a blob.
	Download(ctx context.Context, container, name string) ([]byte, error)
	// Upload writes data to a blob, replacing any existing contents.
	Upload(ctx context.Context, container, name string, data []byte) error
	// Delete removes a blob.
	Delete(ctx context.Context, container, name string) error
}

// IsNotFound reports whether err represents a missing blob.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
