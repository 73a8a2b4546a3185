package store

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Memory is a map-backed KV. The zero value is not usable; call NewMemory.
type Memory struct {
	mu     sync.RWMutex
	values map[string]Value
}

var _ KV = (*Memory)(nil)

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]Value)}
}

// Get reads the value stored under key.
func (m *Memory) Get(_ context.Context, key string) (Value, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if ok && v.Kind == KindSet {
		v.Set = slices.Clone(v.Set)
	}
	return v, ok, nil
}

// Keys returns every key starting with prefix, in ascending byte order.
func (m *Memory) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := []string{}
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Apply executes the batch atomically.
func (m *Memory) Apply(_ context.Context, b *Batch) error {
	if b == nil {
		return nil
	}
	// Validate before touching the map so a bad op leaves no partial write.
	for _, o := range b.ops {
		if o.delete {
			continue
		}
		if _, err := encodeValue(o.value); err != nil {
			return fmt.Errorf("apply batch: %q: %w", o.key, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range b.ops {
		if o.delete {
			delete(m.values, o.key)
			continue
		}
		v := o.value
		if v.Kind == KindSet {
			v = Set(v.Set...)
		}
		m.values[o.key] = v
	}
	return nil
}
