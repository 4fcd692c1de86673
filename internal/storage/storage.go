// Package storage defines the persistence boundary for client snapshots: a
// keyed blob store where every write either fully lands or fails.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a key has never been written
var ErrNotFound = errors.New("storage: key not found")

// BlobStore persists opaque payloads by key
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte) error
	Close() error
}
