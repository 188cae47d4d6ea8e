package localstore

import (
	"context"
	"sync"
)

// Store is a small client-local key-value store. Values are JSON-serialized
// strings; keys are flat.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, val string) error
	Delete(ctx context.Context, key string) error
}

type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewInMemory() *InMemoryStore { return &InMemoryStore{data: make(map[string]string)} }

func (s *InMemoryStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	v, ok := s.data[key]
	s.mu.RUnlock()
	return v, ok
}

func (s *InMemoryStore) Set(_ context.Context, key string, val string) error {
	s.mu.Lock()
	s.data[key] = val
	s.mu.Unlock()
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
	return nil
}
