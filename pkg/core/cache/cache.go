// ============================================================================
// cminus - C-minus compiler front end
// ============================================================================
//
// Package:     cache
// Description: Thread-safe in-memory cache with TTL, keyed by source content
// Author:      Mike Stoffels
// Created:     2025-12-06
// Modified:    2026-10-17
// License:     MIT
// ============================================================================

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// entry is a cached item with expiration
type entry[V any] struct {
	value      V
	stored     time.Time
	expiration time.Time
}

func (e *entry[V]) expired(now time.Time) bool {
	if e.expiration.IsZero() {
		return false
	}
	return now.After(e.expiration)
}

// Cache is a thread-safe in-memory cache with TTL support
type Cache[V any] struct {
	mu       sync.Mutex
	items    map[string]*entry[V]
	maxItems int
	ttl      time.Duration
	now      func() time.Time

	// Metrics
	hits   int64
	misses int64
}

// Config holds cache configuration
type Config struct {
	// MaxItems bounds the cache; the oldest entry is evicted first
	MaxItems int

	// TTL of an entry; zero keeps entries until they are evicted
	TTL time.Duration
}

// DefaultConfig returns default cache configuration
func DefaultConfig() Config {
	return Config{
		MaxItems: 32,
		TTL:      10 * time.Minute,
	}
}

// New creates a new cache instance
func New[V any](cfg Config) *Cache[V] {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = DefaultConfig().MaxItems
	}
	return &Cache[V]{
		items:    make(map[string]*entry[V]),
		maxItems: cfg.MaxItems,
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

// SourceKey returns the cache key of a source text
func SourceKey(src []byte) string {
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])
}

// Get retrieves a value from the cache
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, exists := c.items[key]
	if !exists || e.expired(c.now()) {
		if exists {
			delete(c.items, key)
		}
		c.misses++
		var zero V
		return zero, false
	}

	c.hits++
	return e.value, true
}

// Set stores a value with the default TTL
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.removeExpired(now)
	if _, exists := c.items[key]; !exists && len(c.items) >= c.maxItems {
		c.evictOldest()
	}

	e := &entry[V]{value: value, stored: now}
	if c.ttl > 0 {
		e.expiration = now.Add(c.ttl)
	}
	c.items[key] = e
}

// GetOrSet returns the cached value or computes and stores it.
// Errors from fn are returned and nothing is cached.
func (c *Cache[V]) GetOrSet(key string, fn func() (V, error)) (V, bool, error) {
	if val, ok := c.Get(key); ok {
		return val, true, nil
	}

	val, err := fn()
	if err != nil {
		return val, false, err
	}

	c.Set(key, val)
	return val, false, nil
}

// Delete removes a value from the cache
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry[V])
}

// Size returns the number of items in the cache
func (c *Cache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns cache statistics; hitRate is a percentage
func (c *Cache[V]) Stats() (hits, misses int64, hitRate float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits = c.hits
	misses = c.misses
	total := hits + misses
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return
}

// evictOldest removes the entry stored first (must be called with lock held)
func (c *Cache[V]) evictOldest() {
	var oldestKey string
	var oldest time.Time

	for key, e := range c.items {
		if oldestKey == "" || e.stored.Before(oldest) {
			oldestKey = key
			oldest = e.stored
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// removeExpired drops expired entries (must be called with lock held)
func (c *Cache[V]) removeExpired(now time.Time) {
	for key, e := range c.items {
		if e.expired(now) {
			delete(c.items, key)
		}
	}
}
