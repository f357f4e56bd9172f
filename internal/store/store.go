package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is bound to the key.
var ErrNotFound = errors.New("key not found")

// Store is the key-value collaborator all handlers operate against.
// Implementations provide atomic single-key operations; nothing in the
// service assumes compare-and-swap, so check-then-write sequences have
// a race window under concurrent requests (last write wins).
type Store interface {
	// Get returns the value bound to key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put binds value to key, overwriting any previous binding.
	Put(ctx context.Context, key, value string) error

	// Delete removes the binding for key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backing resources.
	Close() error
}
