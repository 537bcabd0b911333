// Package store provides the key/value persistence used for history and the
// optional response cache.
package store

import "github.com/inglify/inglify"

// Store is a string key/value store.
type Store interface {
	// Get retrieves a value. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Load is Get with read failures reported instead of folded into a miss.
	// Callers that rewrite what they read use it so a failed read never
	// becomes an overwrite.
	Load(key string) (string, bool, error)

	// Set stores a value.
	Set(key string, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(key string) error
}

var (
	_ inglify.ResponseCache = (Store)(nil)
	_ Store                 = (*InMemoryStore)(nil)
	_ Store                 = (*RedisStore)(nil)
	_ Store                 = (*FileStore)(nil)
)
