package statestore

import (
	"context"
	"sync"
)

// MemoryBlob keeps the state in memory. Useful for tests and dry runs.
type MemoryBlob struct {
	mu     sync.RWMutex
	data   []byte
	stored bool
	writes int
}

// NewMemoryBlob constructs an empty MemoryBlob.
func NewMemoryBlob() *MemoryBlob {
	return &MemoryBlob{}
}

// Backend names the store for logs.
func (m *MemoryBlob) Backend() string { return "memory" }

func (m *MemoryBlob) Get(ctx context.Context) ([]byte, error) {
	_ = ctx
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.stored {
		return nil, ErrNotFound
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemoryBlob) Set(ctx context.Context, data []byte) error {
	_ = ctx
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = append(m.data[:0:0], data...)
	m.stored = true
	m.writes++
	return nil
}

// Writes reports how many times Set has been called.
func (m *MemoryBlob) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}
