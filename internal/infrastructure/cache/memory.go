package cache

import (
	"time"

	"trendora-backend/pkg/cache"

	gocache "github.com/patrickmn/go-cache"
)

// memoryCache backs the catalog read cache with patrickmn/go-cache. Single
// process only; a cold start simply refills from Postgres.
type memoryCache struct {
	store *gocache.Cache
}

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) cache.CacheService {
	return &memoryCache{store: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *memoryCache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *memoryCache) Set(key string, value interface{}, duration time.Duration) {
	c.store.Set(key, value, duration)
}

func (c *memoryCache) Delete(key string) {
	c.store.Delete(key)
}

func (c *memoryCache) Flush() {
	c.store.Flush()
}
