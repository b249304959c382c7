package common

import (
	"encoding/json"
	"time"
)

// CacheInterface defines the contract for cache implementations
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value interface{}, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) (interface{}, bool)

	// Delete removes a value from cache by key
	Delete(key string)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}

// DecodeCached copies a cached value into dest. In-memory caches hand back the
// stored value itself while Redis hands back decoded JSON, so both shapes are accepted.
func DecodeCached[T any](val interface{}, dest *T) bool {
	switch v := val.(type) {
	case T:
		*dest = v
		return true
	case *T:
		if v == nil {
			return false
		}
		*dest = *v
		return true
	}

	raw, err := json.Marshal(val)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}
