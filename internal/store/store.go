// Package store provides the key-value persistence abstraction for records
// and its in-memory, file, Redis, and PostgreSQL implementations.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// Store is an asynchronous key-value store over opaque strings. Records are
// serialized as JSON text before being handed to a Store, so implementations
// never interpret values.
type Store interface {
	// Get returns the value for key, or ErrNotFound if absent.
	Get(ctx context.Context, key string) (string, error)
	// Put writes value under key, overwriting any previous value.
	Put(ctx context.Context, key, value string) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// List returns all keys starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
