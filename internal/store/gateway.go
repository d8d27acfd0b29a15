package store

import (
	"context"
	"errors"
)

// Gateway is a string-keyed byte store. Each call is atomic for its own key;
// nothing spans keys, so a multi-key update can be left half applied.
type Gateway interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Keys lists every key that starts with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the backend.
	Close() error
}

// ErrFormatTooNew is returned when the stored key layout was written by a
// newer, incompatible release.
var ErrFormatTooNew = errors.New("store: data written by a newer format")
