package assistant

import (
	"sync"
	"time"
)

// snapshotCache is a best-effort TTL cache for insight snapshots. It is
// constructed and injected explicitly so its lifetime and invalidation are
// visible at the call site; a miss always falls back to full computation, so
// it is never a source of correctness.
type snapshotCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	snapshot  *InsightSnapshot
	expiresAt time.Time
}

func newSnapshotCache(ttl time.Duration) *snapshotCache {
	return &snapshotCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *snapshotCache) get(key string) (*InsightSnapshot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.snapshot, true
}

func (c *snapshotCache) put(key string, snapshot *InsightSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// Opportunistically drop expired entries so the map stays bounded by the
	// active key set.
	now := c.now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{snapshot: snapshot, expiresAt: now.Add(c.ttl)}
}
