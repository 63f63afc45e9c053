// Package cache provides a small in-process TTL cache used for catalog
// listings. Entries expire after a per-entry or default TTL; a background
// goroutine sweeps expired entries.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value      interface{}
	expiration int64
}

// Cache is a concurrency-safe TTL cache keyed by string.
type Cache struct {
	items    map[string]entry
	mu       sync.RWMutex
	ttl      time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a cache with the given default TTL and starts the sweeper.
func New(defaultTTL time.Duration) *Cache {
	c := &Cache{
		items: make(map[string]entry),
		ttl:   defaultTTL,
		done:  make(chan struct{}),
	}
	go c.sweep()
	return c
}

// Stop terminates the sweeper goroutine. The cache remains usable; entries
// still expire on read, they just stop being swept. Safe to call twice.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.done)
	})
}

// Set stores a value under key, with an optional TTL override.
func (c *Cache) Set(key string, value interface{}, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}
	c.items[key] = entry{
		value:      value,
		expiration: time.Now().Add(duration).UnixNano(),
	}
}

// Get returns the value under key, or false if absent or expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.items[key]
	if !ok || time.Now().UnixNano() > e.expiration {
		return nil, false
	}
	return e.value, true
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// DeletePrefix removes every key starting with prefix. Catalog writes use it
// to invalidate all cached listings at once.
func (c *Cache) DeletePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
}

// Size returns the number of stored entries, expired or not.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now().UnixNano()
			c.mu.Lock()
			for key, e := range c.items {
				if now > e.expiration {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
