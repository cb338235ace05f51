package store

import (
	"context"
	"sync"
)

// Memory is an in-memory KV with the same semantics as the SQLite store.
// Used by tests and as a fallback when no storage path is usable.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: map[string]string{}}
}

// Get returns the stored value and whether the key was present.
func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, found := m.values[key]
	return value, found, nil
}

// Set stores value under key.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Delete removes key.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// Clear removes every session key.
func (m *Memory) Clear(ctx context.Context) error {
	for _, key := range SessionKeys() {
		if err := m.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

// Len reports the number of stored keys. Test helper.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.values)
}
