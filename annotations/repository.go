package annotations

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Repository.Get for a key that was never written.
var ErrNotFound = errors.New("key not found")

// Repository is a flat key-value medium local to the device. Values are
// opaque bytes; there is no transaction or cross-process locking.
type Repository interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

// MemoryRepository keeps values in process memory.
type MemoryRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string][]byte)}
}

func (m *MemoryRepository) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryRepository) Put(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}
