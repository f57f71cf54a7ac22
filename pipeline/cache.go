package pipeline

import (
	"sync"
	"time"

	"github.com/docuseek/nlq/core"
)

type cacheEntry struct {
	result   core.ProcessingResult
	storedAt time.Time
}

// resultCache is a TTL cache with insertion-order FIFO eviction.
// Expiry is checked at lookup time only; no background sweeper runs.
type resultCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	order   []string
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

func newResultCache(ttl time.Duration, maxSize int, now func() time.Time) *resultCache {
	return &resultCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
		now:     now,
	}
}

func (c *resultCache) get(key string) (core.ProcessingResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return core.ProcessingResult{}, false
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) > c.ttl {
		c.removeLocked(key)
		return core.ProcessingResult{}, false
	}
	return entry.result, true
}

// put stores a result. Concurrent puts for the same key are
// last-write-wins; the key keeps its original queue position.
func (c *resultCache) put(key string, result core.ProcessingResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{result: result, storedAt: c.now()}

	for c.maxSize > 0 && len(c.entries) > c.maxSize {
		oldest := c.order[0]
		c.removeLocked(oldest)
	}
}

func (c *resultCache) removeLocked(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *resultCache) resize(ttl time.Duration, maxSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
	c.maxSize = maxSize
	for c.maxSize > 0 && len(c.entries) > c.maxSize {
		c.removeLocked(c.order[0])
	}
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	c.order = nil
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
