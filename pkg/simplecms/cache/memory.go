package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tendant/simple-cms/pkg/simplecms"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process SchemaCache. Entries are stored encoded so
// callers never share a *ContentType with the cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemory creates a memory cache. A non-positive ttl uses TTLDefault.
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = TTLDefault
	}
	return &Memory{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *Memory) Get(ctx context.Context, id uuid.UUID) (*simplecms.ContentType, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if m.now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, false, nil
	}
	ct, err := decode(e.data)
	if err != nil {
		return nil, false, err
	}
	return ct, true, nil
}

func (m *Memory) Set(ctx context.Context, ct *simplecms.ContentType) error {
	data, err := encode(ct)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[ct.ID] = memoryEntry{data: data, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *Memory) Delete(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, id)
	return nil
}

// Len returns the number of cached entries, including expired ones not yet evicted.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
