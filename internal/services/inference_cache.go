package services

import (
	"sync"
	"time"

	"github.com/alimgiray/gitmentor/internal/metrics"
	"github.com/alimgiray/gitmentor/internal/models"
)

// DefaultCacheTTL is how long a parsed model result is served without a new inference
const DefaultCacheTTL = time.Hour

// InferenceCache maps a (user, action) key to a previously parsed result
type InferenceCache interface {
	Get(key string) (models.ActionResult, bool)
	Set(key string, value models.ActionResult)
}

// CacheKey builds the cache key for username and action
func CacheKey(username string, action models.Action) string {
	return username + "::" + string(action)
}

type cacheEntry struct {
	data      models.ActionResult
	createdAt time.Time
}

// MemoryInferenceCache is a process-local cache with lazy, read-time expiry.
// There is no background sweep: an expired entry is removed by the lookup that finds it.
type MemoryInferenceCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryInferenceCache creates an empty cache; a nil clock means time.Now
func NewMemoryInferenceCache(ttl time.Duration, now func() time.Time) *MemoryInferenceCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryInferenceCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *MemoryInferenceCache) Get(key string) (models.ActionResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		metrics.RecordCacheLookup(metrics.CacheMiss)
		return nil, false
	}

	if c.now().Sub(entry.createdAt) > c.ttl {
		delete(c.entries, key)
		metrics.RecordCacheLookup(metrics.CacheExpired)
		return nil, false
	}

	metrics.RecordCacheLookup(metrics.CacheHit)
	return entry.data, true
}

func (c *MemoryInferenceCache) Set(key string, value models.ActionResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{data: value, createdAt: c.now()}
}

// Len returns the number of stored entries, expired ones included
func (c *MemoryInferenceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
