package cache

import (
	"context"
	"sync"
	"time"

	"yt2t/internal/app/model"
)

type entry struct {
	meta    model.VideoMetadata
	expires time.Time
}

// MemoryCache is an in-process TTL map.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a MemoryCache whose entries live for ttl, or
// DefaultTTL when ttl is not positive.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]entry),
		ttl:     effectiveTTL(ttl),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) (model.VideoMetadata, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return model.VideoMetadata{}, false
	}
	if !c.now().Before(e.expires) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur.expires.Equal(e.expires) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return model.VideoMetadata{}, false
	}
	return e.meta, true
}

func (c *MemoryCache) Set(_ context.Context, key string, meta model.VideoMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{meta: meta, expires: c.now().Add(c.ttl)}
	c.sweepLocked()
}

func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
	return nil
}

// Len returns the number of stored entries, expired or not.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// sweepLocked drops expired entries once the map grows past a small bound.
func (c *MemoryCache) sweepLocked() {
	if len(c.entries) < 1024 {
		return
	}
	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, key)
		}
	}
}
