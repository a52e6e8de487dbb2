package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/nhl-game-tracker/internal/domain/games"
	"github.com/preston-bernstein/nhl-game-tracker/internal/statestore"
)

// StubProvider is a test double for providers.GameProvider.
type StubProvider struct {
	Games  []games.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context) ([]games.Game, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case s.Notify <- struct{}{}:
		default:
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// StubBlob is an in-memory statestore.BlobStore with injectable failures.
type StubBlob struct {
	mu     sync.Mutex
	Data   []byte
	GetErr error
	SetErr error
	Sets   int
}

func (b *StubBlob) Get(ctx context.Context) ([]byte, error) {
	_ = ctx
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.GetErr != nil {
		return nil, b.GetErr
	}
	if b.Data == nil {
		return nil, statestore.ErrNotFound
	}
	return append([]byte(nil), b.Data...), nil
}

func (b *StubBlob) Set(ctx context.Context, data []byte) error {
	_ = ctx
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SetErr != nil {
		return b.SetErr
	}
	b.Data = append([]byte(nil), data...)
	b.Sets++
	return nil
}

// Backend names the stub for logs.
func (b *StubBlob) Backend() string { return "stub" }

// Stored returns a copy of the last written blob.
func (b *StubBlob) Stored() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.Data...)
}
