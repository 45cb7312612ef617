// Package kv provides the persistent key-value capability the domain
// collections are built on. Each key holds the full JSON encoding of one
// entity collection (or a scalar session value); writes replace the prior
// value unconditionally.
package kv

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("kv: key not found")
	// ErrUnavailable wraps backend failures (connection lost, file unreadable).
	ErrUnavailable = errors.New("kv: store unavailable")
	// ErrCorrupt wraps values that cannot be decoded by the caller.
	// The store itself never inspects values; collection code wraps decode
	// failures with this sentinel so callers can tell corruption from absence.
	ErrCorrupt = errors.New("kv: corrupt value")
)

// Store is the storage capability injected into each domain collection.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
