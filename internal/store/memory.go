package store

import (
	"errors"
	"sync"
)

var ErrWriteFailed = errors.New("write failed")

// MemoryKV is an in-process KV backend for tests and dry runs
type MemoryKV struct {
	mu         sync.Mutex
	values     map[string]string
	FailWrites bool
}

// NewMemoryKV creates an empty in-memory backend
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return ErrWriteFailed
	}
	m.values[key] = value
	return nil
}
