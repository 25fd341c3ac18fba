package store

import (
	"context"
	"sync"
)

// Memory is a map-backed Store for tests and local development.
type Memory struct {
	mu   sync.RWMutex
	locs map[string]Location
}

func NewMemory() *Memory {
	return &Memory{locs: make(map[string]Location)}
}

func (m *Memory) FindByUUID(_ context.Context, uuid string) (*Location, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	loc, ok := m.locs[uuid]
	if !ok {
		return nil, ErrNotFound
	}
	copy := loc
	return &copy, nil
}

func (m *Memory) Save(_ context.Context, loc *Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locs[loc.UUID] = *loc
	return nil
}

func (m *Memory) Close() error { return nil }

// Count reports the number of stored documents.
func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.locs)
}
