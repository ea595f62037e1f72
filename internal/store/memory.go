package store

import (
	"context"
	"sync"
)

// MemoryKV es una implementación en memoria para tests y ambientes efímeros.
type MemoryKV struct {
	mu     sync.RWMutex
	data   map[string][]byte
	writes map[string]int
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{
		data:   make(map[string][]byte),
		writes: make(map[string]int),
	}
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	value, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (m *MemoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf := make([]byte, len(value))
	copy(buf, value)
	m.data[key] = buf
	m.writes[key]++
	return nil
}

// Writes devuelve cuántas veces se escribió una clave. Útil en tests
// para verificar que una operación fallida no tocó el almacenamiento.
func (m *MemoryKV) Writes(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes[key]
}

func (m *MemoryKV) Close() error { return nil }
