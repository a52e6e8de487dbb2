package statestore

import (
	"errors"
	"fmt"
)

// StoreError reports that the state could not be read or written for a reason
// other than it not existing yet.
type StoreError struct {
	Op      string
	Backend string
	Err     error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("state store %s (%s): %v", e.Op, e.Backend, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// AsStoreError attempts to unwrap an error into a StoreError.
func AsStoreError(err error) (*StoreError, bool) {
	var sErr *StoreError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}
