// credstore/memory.go
package credstore

import "sync"

// MemoryStore is an in-memory Store implementation guarded by a mutex.
// It is the default store for a client instance.
type MemoryStore struct {
	lock   sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string]string),
	}
}

var _ Store = (*MemoryStore)(nil)

// Get returns the value for key and whether it is present.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	value, ok := m.values[key]
	if value == "" {
		return "", false
	}
	return value, ok
}

// Set stores value under key, replacing any previous value.
func (m *MemoryStore) Set(key, value string) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.values[key] = value
}

// Clear removes the value stored under key.
func (m *MemoryStore) Clear(key string) {
	m.lock.Lock()
	defer m.lock.Unlock()

	delete(m.values, key)
}
