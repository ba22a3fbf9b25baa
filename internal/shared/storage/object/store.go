package object

import (
	"context"
	"io"
	"time"
)

// ObjectStore defines the contract for saving and retrieving binary objects
// at caller-chosen keys. Implementations perform no access control; ownership
// of a key is enforced by the orchestrator layer before any call lands here.
type ObjectStore interface {
	// Put writes the reader contents at the key with idempotent overwrite
	// semantics and returns the number of bytes written.
	Put(ctx context.Context, storageKey string, contentType string, r io.Reader) (int64, error)
	// Open reads back the object at the key.
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	// Delete removes the object at the key. Deleting a missing key succeeds.
	Delete(ctx context.Context, storageKey string) error
	// SignReadURL produces a time-limited unauthenticated-bearer URL for the
	// object at the key.
	SignReadURL(ctx context.Context, storageKey string, ttl time.Duration) (string, error)
}
