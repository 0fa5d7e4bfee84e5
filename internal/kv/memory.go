package kv

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-process Store implementation. It backs the test
// suites and lets the server run without external services.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = stored
	return nil
}

// GetByPrefix returns the values of all keys starting with prefix, in
// key order for deterministic scans.
func (m *MemoryStore) GetByPrefix(_ context.Context, prefix string) ([][]byte, error) {
	m.mu.RLock()
	keys := make([]string, 0)
	for k := range m.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	m.mu.RUnlock()
	sort.Strings(keys)

	m.mu.RLock()
	defer m.mu.RUnlock()
	values := make([][]byte, 0, len(keys))
	for _, k := range keys {
		value, ok := m.data[k]
		if !ok {
			continue
		}
		out := make([]byte, len(value))
		copy(out, value)
		values = append(values, out)
	}
	return values, nil
}
