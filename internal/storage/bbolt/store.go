package bbolt

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.etcd.io/bbolt"

	"geminus.dev/internal/storage"
)

const blobBucket = "blobs"

// Store provides a BoltDB-backed blob store.
type Store struct {
	db *bbolt.DB
}

var _ storage.BlobStore = (*Store)(nil)

// Open opens a BoltDB-backed store at the provided path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	cleanPath := filepath.Clean(path)
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(blobBucket)); err != nil {
			return fmt.Errorf("create blob bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the underlying BoltDB database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get fetches the payload stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("blob key is required")
	}

	var payload []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(blobBucket))
		if bucket == nil {
			return fmt.Errorf("blob bucket is missing")
		}
		v := bucket.Get([]byte(key))
		if v == nil {
			return storage.ErrNotFound
		}
		// bolt memory is only valid inside the transaction
		payload = slices.Clone(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Put writes the payload under key in one read-write transaction.
func (s *Store) Put(ctx context.Context, key string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return fmt.Errorf("storage is not configured")
	}
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("blob key is required")
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(blobBucket))
		if bucket == nil {
			return fmt.Errorf("blob bucket is missing")
		}
		return bucket.Put([]byte(key), payload)
	})
}
