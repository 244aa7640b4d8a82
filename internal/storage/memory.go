package storage

import (
	"context"
	"sync"
)

// Memory is an in-memory KV for tests and throwaway sessions.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

// NewMemory returns an empty in-memory slot store.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Get implements KV.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.slots[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

// Set implements KV.
func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(value))
	copy(stored, value)
	m.slots[key] = stored
	return nil
}
