// Package cache stores fetched pages so repeated collection runs skip
// the network. A memory layer serves hot entries, a disk layer survives
// restarts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Cache is a byte store with layer-defined expiry. Implementations fix
// their TTL at construction, so Set never takes one.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Clear() error
}

// PageKey derives the cache key for a page URL.
func PageKey(url string) string {
	digest := sha256.Sum256([]byte(url))
	return hex.EncodeToString(digest[:])
}
