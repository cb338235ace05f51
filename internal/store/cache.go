package store

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedValue wraps a value so absence ("key not stored") can be cached
// alongside present values.
type cachedValue struct {
	Value   string
	Present bool
}

// readCache is an in-memory expirable LRU in front of the durable store.
// Entries expire on TTL so an external writer (another process on the
// same file) is eventually observed.
type readCache struct {
	lru *expirable.LRU[string, cachedValue]
}

func newReadCache(size int, ttl time.Duration) *readCache {
	return &readCache{
		lru: expirable.NewLRU[string, cachedValue](size, nil, ttl),
	}
}

// Get returns (value, present, cached). cached is false on a miss.
func (c *readCache) Get(key string) (string, bool, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return "", false, false
	}
	return entry.Value, entry.Present, true
}

// Set records a present value.
func (c *readCache) Set(key, value string) {
	c.lru.Add(key, cachedValue{Value: value, Present: true})
}

// SetAbsent records that the key is not stored.
func (c *readCache) SetAbsent(key string) {
	c.lru.Add(key, cachedValue{})
}

// Purge drops all cached entries.
func (c *readCache) Purge() {
	c.lru.Purge()
}
