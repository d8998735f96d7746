package keystore

import "sync"

// MemoryStore is a process-lifetime Keystore for tests and ephemeral
// sessions. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]string
}

// NewMemoryStore creates an empty in-memory keystore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]string)}
}

// Store replaces the record for userID.
func (m *MemoryStore) Store(userID, material string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[userID] = material
	return nil
}

// Retrieve returns the record for userID, or ok == false if absent.
func (m *MemoryStore) Retrieve(userID string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	material, ok := m.records[userID]
	return material, ok, nil
}
