package store

import "sync"

// Memory is an in-memory Session and Durable.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Set(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

func (m *Memory) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]string)
}

// Durable adapts m to the Durable interface.
func (m *Memory) Durable() Durable { return memoryDurable{m} }

type memoryDurable struct{ m *Memory }

func (d memoryDurable) Set(key, value string) error {
	d.m.Set(key, value)
	return nil
}

func (d memoryDurable) Get(key string) (string, error) {
	v, ok := d.m.Get(key)
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (d memoryDurable) Remove(key string) error {
	d.m.mu.Lock()
	defer d.m.mu.Unlock()
	delete(d.m.data, key)
	return nil
}

func (d memoryDurable) Keys() ([]string, error) {
	d.m.mu.RLock()
	defer d.m.mu.RUnlock()
	keys := make([]string, 0, len(d.m.data))
	for k := range d.m.data {
		keys = append(keys, k)
	}
	return keys, nil
}
