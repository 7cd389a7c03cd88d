package storage

import (
	"sort"
	"sync"
)

// MemoryStore is an in-process Store. Nothing survives the process.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]string
	quota   int64
}

// NewMemory returns an empty MemoryStore. quota is in bytes; 0 disables it.
func NewMemory(quota int64) *MemoryStore {
	return &MemoryStore{entries: make(map[string]string), quota: quota}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !fits(m.entries, key, value, m.quota) {
		return ErrQuotaExceeded
	}
	m.entries[key] = value
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Keys() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.entries))
	for k := range m.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
