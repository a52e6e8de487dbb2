package statestore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a BlobStore when nothing has been stored yet.
var ErrNotFound = errors.New("state blob not found")

// BlobStore is a single-key get/set store for the encoded tracker state.
type BlobStore interface {
	Get(ctx context.Context) ([]byte, error)
	Set(ctx context.Context, data []byte) error
}

// Backend is implemented by blob stores that can name themselves for logs.
type Backend interface {
	Backend() string
}

func backendName(b BlobStore) string {
	if n, ok := b.(Backend); ok {
		return n.Backend()
	}
	return "custom"
}
