// Package history implements the bounded, newest-first log of past
// translation sessions.
package history

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/inglify/inglify"
	"github.com/inglify/inglify/store"
)

const (
	// StorageKey is the key the whole list is stored under.
	StorageKey = "translation-history"

	// MaxItems is the most entries the history keeps.
	MaxItems = 50
)

// Store is the history log. The full list lives under one key and every
// mutation is a read-modify-write of that list, serialized by the Store.
type Store struct {
	kv    store.Store
	key   string
	max   int
	newID func() (string, error)
	mu    sync.Mutex
}

// Option is a functional option for configuring the Store.
type Option func(*Store)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithMaxItems overrides the population cap.
func WithMaxItems(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

// WithIDGenerator sets the function used to assign item ids.
func WithIDGenerator(fn func() (string, error)) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a history store on top of kv.
func New(kv store.Store, opts ...Option) *Store {
	s := &Store{
		kv:    kv,
		key:   StorageKey,
		max:   MaxItems,
		newID: timeOrderedID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// timeOrderedID returns a UUIDv7, which sorts by creation time.
func timeOrderedID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Items returns the stored history, newest first. A missing entry reads as
// an empty history; a failed read or an undecodable entry is an error.
func (s *Store) Items() ([]inglify.HistoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Get returns the item with the given id.
func (s *Store) Get(id string) (inglify.HistoryItem, bool, error) {
	items, err := s.Items()
	if err != nil {
		return inglify.HistoryItem{}, false, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, true, nil
		}
	}
	return inglify.HistoryItem{}, false, nil
}

// Append records resp as the newest item and evicts the oldest entries
// beyond the cap.
func (s *Store) Append(resp inglify.TranslationResponse) (inglify.HistoryItem, error) {
	id, err := s.newID()
	if err != nil {
		return inglify.HistoryItem{}, fmt.Errorf("generating history id: %w", err)
	}
	item := inglify.NewHistoryItem(id, resp)

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return inglify.HistoryItem{}, err
	}

	items = append([]inglify.HistoryItem{item}, items...)
	if len(items) > s.max {
		items = items[:s.max]
	}

	if err := s.save(items); err != nil {
		return inglify.HistoryItem{}, err
	}
	return item, nil
}

// Delete removes the item with the given id, leaving the others in order.
// It reports whether an item was removed.
func (s *Store) Delete(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return false, err
	}

	kept := items[:0]
	removed := false
	for _, item := range items {
		if item.ID == id {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return false, nil
	}
	return true, s.save(kept)
}

// Clear removes every item.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(s.key); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}

// load must be called with the lock held.
func (s *Store) load() ([]inglify.HistoryItem, error) {
	raw, ok, err := s.kv.Load(s.key)
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if !ok || raw == "" {
		return []inglify.HistoryItem{}, nil
	}

	var items []inglify.HistoryItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decoding history: %w", err)
	}
	return items, nil
}

// save must be called with the lock held.
func (s *Store) save(items []inglify.HistoryItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if err := s.kv.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}
	return nil
}
