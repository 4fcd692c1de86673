package store

import (
	"errors"
	"fmt"
)

// ErrNoSnapshot is returned by LoadSnapshot when nothing was ever saved
var ErrNoSnapshot = errors.New("no saved snapshot")

// PersistenceError reports a storage read or write failure. The in-memory
// state is unaffected.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// CorruptStateError reports a saved snapshot that could not be decoded. The
// corrupt payload is discarded and the store keeps its pre-load state.
type CorruptStateError struct {
	Err error
}

func (e *CorruptStateError) Error() string {
	return fmt.Sprintf("saved snapshot is corrupt: %v", e.Err)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Err
}
