package parser

import (
	"sync"

	"github.com/seuros/gopher-graph/src/cypher"
)

const defaultCacheSize = 1000

// queryCache stores parsed queries keyed by their source text.
// Thread-safe with RWMutex and FIFO eviction. Only successful parses are
// stored.
type queryCache struct {
	mu      sync.RWMutex
	cache   map[string]*cypher.Query
	order   []string // FIFO insertion order
	maxSize int
}

func newQueryCache(maxSize int) *queryCache {
	return &queryCache{
		cache:   make(map[string]*cypher.Query),
		order:   make([]string, 0),
		maxSize: maxSize,
	}
}

// Fetch retrieves the cached query or builds and stores it using fn.
func (c *queryCache) Fetch(key string, fn func() (*cypher.Query, error)) (*cypher.Query, error) {
	// Fast path: check if key exists with read lock
	c.mu.RLock()
	if q, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return q, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Re-check after acquiring write lock
	if q, ok := c.cache[key]; ok {
		return q, nil
	}

	q, err := fn()
	if err != nil {
		return nil, err
	}

	if len(c.cache) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
	}

	c.cache[key] = q
	c.order = append(c.order, key)
	return q, nil
}

// Len returns the number of cached entries.
func (c *queryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}
