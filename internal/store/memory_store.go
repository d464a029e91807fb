package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-process credential store. Nothing survives a
// restart; useful for tests and ephemeral agents.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[Key]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[Key]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key Key) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return val, nil
}

func (s *MemoryStore) Set(ctx context.Context, key Key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range Keys {
		delete(s.entries, key)
	}
	return nil
}
