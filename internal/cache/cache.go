package cache

import (
	"sync"
	"time"
)

// Default bounds for cached datasets. The cache is tiny by design, so
// an O(size) eviction scan on Set is acceptable.
const (
	DefaultTTL     = 5 * time.Minute
	DefaultMaxSize = 100
)

type entry struct {
	value      interface{}
	insertedAt time.Time
}

// Cache is a bounded in-memory store with a fixed time-to-live.
// Expiry is lazy on Get; when capacity is reached, Set evicts the
// single oldest entry by insertion timestamp. There is no LRU
// promotion - only insertion order determines eviction priority.
// Safe for concurrent use by the request handlers.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	ttl     time.Duration
	maxSize int

	// now is swappable for time-dependent tests
	now func() time.Time
}

// New creates a cache with the given ttl and maximum entry count.
// Non-positive arguments fall back to the defaults.
func New(ttl time.Duration, maxSize int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		entries: make(map[string]entry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Set stores a value, evicting the oldest entry first when the cache
// is full and the key is not already present.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = entry{value: value, insertedAt: c.now()}
}

// Get returns the value for key, lazily evicting it when its age
// exceeds the ttl.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.insertedAt) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Has reports whether a live entry exists for key
func (c *Cache) Has(key string) bool {
	_, ok := c.Get(key)
	return ok
}

// Delete removes an entry if present
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, expired or not
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the entry with the earliest insertion time.
// Caller holds the lock.
func (c *Cache) evictOldest() {
	var oldestKey string
	var oldestAt time.Time
	first := true
	for k, e := range c.entries {
		if first || e.insertedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.insertedAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
