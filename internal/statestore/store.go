package statestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/tracker"
	"github.com/preston-bernstein/nhl-game-tracker/internal/logging"
)

// Store loads and saves the tracker state as JSON in a BlobStore.
type Store struct {
	blob    BlobStore
	backend string
	logger  *slog.Logger
}

// New wraps a blob store. logger may be nil.
func New(blob BlobStore, logger *slog.Logger) *Store {
	return &Store{
		blob:    blob,
		backend: backendName(blob),
		logger:  logger,
	}
}

// Backend names the underlying blob store.
func (s *Store) Backend() string { return s.backend }

// Load returns the persisted state. A missing, empty or undecodable blob
// yields tracker.Default(); only read failures are returned as errors.
func (s *Store) Load(ctx context.Context) (tracker.State, error) {
	data, err := s.blob.Get(ctx)
	if errors.Is(err, ErrNotFound) {
		return tracker.Default(), nil
	}
	if err != nil {
		return tracker.State{}, &StoreError{Op: "load", Backend: s.backend, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return tracker.Default(), nil
	}

	var state tracker.State
	if err := json.Unmarshal(data, &state); err != nil {
		logging.Warn(s.logger, "discarding unreadable tracker state", err, logging.FieldBackend, s.backend)
		return tracker.Default(), nil
	}
	return state, nil
}

// Save replaces the persisted state.
func (s *Store) Save(ctx context.Context, state tracker.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return &StoreError{Op: "save", Backend: s.backend, Err: err}
	}
	data = append(data, '\n')
	if err := s.blob.Set(ctx, data); err != nil {
		return &StoreError{Op: "save", Backend: s.backend, Err: err}
	}
	return nil
}
