package cache

import "time"

// CacheService is the read-through cache the catalog sits behind. Values are
// stored as-is; callers own the type assertion on the way out.
type CacheService interface {
	// Get returns the cached value and whether the key was present.
	Get(key string) (interface{}, bool)

	// Set stores a value for the given duration.
	Set(key string, value interface{}, duration time.Duration)

	// Delete evicts a single key.
	Delete(key string)

	// Flush drops everything.
	Flush()
}
