package cache

import (
	"sync"
	"time"
)

type Entry[T any] struct {
	Value     T
	StoredAt  time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the entry outlived its TTL.
// A zero ExpiresAt never expires.
func (e Entry[T]) IsExpired() bool {
	if e.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(e.ExpiresAt)
}

type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]Entry[T]
	ttl     time.Duration
}

// New creates a cache. ttl == 0 keeps entries until deleted.
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]Entry[T]),
		ttl:     ttl,
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	entry, ok := c.entry(key)
	if !ok {
		var zero T
		return zero, false
	}
	return entry.Value, true
}

// UpdatedAt returns when key was last stored, or the zero time if it is
// missing or expired.
func (c *Cache[T]) UpdatedAt(key string) time.Time {
	entry, ok := c.entry(key)
	if !ok {
		return time.Time{}
	}
	return entry.StoredAt
}

func (c *Cache[T]) entry(key string) (Entry[T], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || entry.IsExpired() {
		return Entry[T]{}, false
	}
	return entry, true
}

func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var expiresAt time.Time
	if c.ttl > 0 {
		expiresAt = now.Add(c.ttl)
	}

	c.entries[key] = Entry[T]{
		Value:     value,
		StoredAt:  now,
		ExpiresAt: expiresAt,
	}
}

func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}
