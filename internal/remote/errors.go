package remote

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every *UnavailableError
var ErrUnavailable = errors.New("server unavailable")

// UnavailableError means the server could not be reached or did not answer
// with a usable response: transport failure, timeout, 5xx, or a non-2xx
// status without an error body.
type UnavailableError struct {
	Op     string
	Status int // 0 when no response arrived
	Err    error
}

func (e *UnavailableError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v: %v", e.Op, ErrUnavailable, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: %v: HTTP %d", e.Op, ErrUnavailable, e.Status)
	default:
		return fmt.Sprintf("%s: %v", e.Op, ErrUnavailable)
	}
}

func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}
	return []error{ErrUnavailable, e.Err}
}

// RemoteError means a reachable server rejected the request or answered with
// a body the client could not use.
type RemoteError struct {
	Op      string
	Status  int
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: server rejected request (HTTP %d): %s", e.Op, e.Status, e.Message)
}
