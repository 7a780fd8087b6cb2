package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// memoryCleanupInterval is how often expired entries are swept.
const memoryCleanupInterval = 10 * time.Minute

// MemoryCache keeps pages in process memory for the duration of a run.
type MemoryCache struct {
	entries *gocache.Cache
}

// NewMemoryCache creates a memory cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{entries: gocache.New(ttl, memoryCleanupInterval)}
}

// Get returns the cached value for key.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	value, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}
	return value.([]byte), true
}

// Set stores value under key with the cache's TTL.
func (c *MemoryCache) Set(key string, value []byte) error {
	c.entries.SetDefault(key, value)
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear() error {
	c.entries.Flush()
	return nil
}
