package catalog

import (
	"sync"
	"time"
)

type cacheEntry[T any] struct {
	items     []T
	expiresAt time.Time
}

// Cache is a small TTL cache of lists. Callers get copies, so mutating a
// returned slice never touches the cached one.
type Cache[T any] struct {
	mu    sync.Mutex
	items map[string]cacheEntry[T]
}

func NewCache[T any]() *Cache[T] {
	return &Cache[T]{items: make(map[string]cacheEntry[T])}
}

func (c *Cache[T]) Get(key string, now time.Time) ([]T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
		delete(c.items, key)
		return nil, false
	}
	out := make([]T, len(entry.items))
	copy(out, entry.items)
	return out, true
}

func (c *Cache[T]) Set(key string, items []T, ttl time.Duration, now time.Time) {
	if ttl <= 0 {
		return
	}
	out := make([]T, len(items))
	copy(out, items)
	c.mu.Lock()
	c.items[key] = cacheEntry[T]{
		items:     out,
		expiresAt: now.Add(ttl),
	}
	c.mu.Unlock()
}

func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}
