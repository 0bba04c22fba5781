package cloud

import (
	"context"
	"sync"
)

// Store is the remote document store records are mirrored to.
// Documents are opaque JSON payloads keyed by record ID within a collection.
// Sync only ever adds documents, so there is no delete.
type Store interface {
	List(ctx context.Context, collection string) (map[string][]byte, error)
	Put(ctx context.Context, collection, id string, payload []byte) error
	Close() error
}

// MemoryStore is an in-process Store used for local development and tests
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) List(ctx context.Context, collection string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	docs := make(map[string][]byte, len(m.collections[collection]))
	for id, payload := range m.collections[collection] {
		docs[id] = append([]byte(nil), payload...)
	}
	return docs, nil
}

func (m *MemoryStore) Put(ctx context.Context, collection, id string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	docs, ok := m.collections[collection]
	if !ok {
		docs = make(map[string][]byte)
		m.collections[collection] = docs
	}
	docs[id] = append([]byte(nil), payload...)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
