// Package media provides MediaResolver implementations that check opaque
// media ids written to media fields.
package media

import (
	"context"
	"sync"
)

// Memory is an in-memory set of known media ids
type Memory struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewMemory creates a resolver that knows the given ids
func NewMemory(ids ...string) *Memory {
	m := &Memory{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
	return m
}

// Add registers media ids
func (m *Memory) Add(ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		m.ids[id] = struct{}{}
	}
}

// Remove forgets media ids
func (m *Memory) Remove(ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.ids, id)
	}
}

func (m *Memory) Exists(ctx context.Context, mediaID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.ids[mediaID]
	return ok, nil
}
