package preferences

import cmap "github.com/orcaman/concurrent-map/v2"

// MemoryStore is a non-persistent Store.
type MemoryStore struct {
	values cmap.ConcurrentMap[string, string]
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: cmap.New[string]()}
}

// Get returns the value stored under key and whether it was present.
func (m *MemoryStore) Get(key string) (string, bool, error) {
	v, ok := m.values.Get(key)
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryStore) Set(key, value string) error {
	m.values.Set(key, value)
	return nil
}
