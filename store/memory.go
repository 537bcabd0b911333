package store

import (
	"sync"
	"time"
)

type entry struct {
	value     string
	timestamp time.Time
}

// InMemoryStore is a thread-safe in-memory store with TTL support.
type InMemoryStore struct {
	data map[string]entry
	mu   sync.RWMutex
	ttl  time.Duration
}

// NewInMemoryStore creates a new in-memory store.
// If ttl is 0 or negative, entries never expire.
func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	if ttl < 0 {
		ttl = 0
	}
	return &InMemoryStore{
		data: make(map[string]entry),
		ttl:  ttl,
	}
}

// Get retrieves a value from the store.
func (s *InMemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return "", false
	}

	if s.ttl > 0 && time.Since(e.timestamp) > s.ttl {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return "", false
	}

	return e.value, true
}

// Load retrieves a value. It never fails.
func (s *InMemoryStore) Load(key string) (string, bool, error) {
	v, ok := s.Get(key)
	return v, ok, nil
}

// Set stores a value.
func (s *InMemoryStore) Set(key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = entry{
		value:     value,
		timestamp: time.Now(),
	}
	return nil
}

// Delete removes a key.
func (s *InMemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Len returns the number of entries (including expired ones).
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Clear removes all entries.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]entry)
}
