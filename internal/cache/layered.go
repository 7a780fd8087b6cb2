package cache

import "time"

// LayeredCache fronts a disk cache with a memory cache. Reads check
// memory first and promote disk hits; writes land in both layers.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache builds the two layers with their own TTLs. The disk
// TTL is normally the longer one: memory serves a single run, disk
// carries pages across runs.
func NewLayeredCache(memoryTTL time.Duration, dir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL),
		disk:   NewDiskCache(dir, diskTTL),
	}
}

// Get checks memory, then disk. A disk hit is promoted into memory.
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if value, ok := c.memory.Get(key); ok {
		return value, true
	}
	value, ok := c.disk.Get(key)
	if !ok {
		return nil, false
	}
	_ = c.memory.Set(key, value)
	return value, true
}

// Set writes to disk before memory, so a failed disk write cannot leave
// the fast layer claiming a page the slow layer never got.
func (c *LayeredCache) Set(key string, value []byte) error {
	if err := c.disk.Set(key, value); err != nil {
		return err
	}
	return c.memory.Set(key, value)
}

// Clear empties both layers.
func (c *LayeredCache) Clear() error {
	if err := c.memory.Clear(); err != nil {
		return err
	}
	return c.disk.Clear()
}
