package service

import (
	"sync"
	"time"

	"github.com/set-night/tnguide/internal/domain"
)

// FacetsCache keeps the distinct categories and districts in memory for ttl.
// Every Invalidate bumps the generation; a Set carrying an older generation
// is dropped so a load that raced a write cannot repopulate stale facets.
type FacetsCache struct {
	mu         sync.RWMutex
	facets     *domain.PlaceFacets
	cachedAt   time.Time
	ttl        time.Duration
	generation uint64
}

func NewFacetsCache(ttl time.Duration) *FacetsCache {
	return &FacetsCache{ttl: ttl}
}

// Get returns the cached facets, or nil on a miss together with the
// generation the caller must pass to Set.
func (c *FacetsCache) Get() (*domain.PlaceFacets, uint64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.facets == nil || time.Since(c.cachedAt) > c.ttl {
		return nil, c.generation
	}
	return c.facets, c.generation
}

// Set stores facets loaded at generation gen. It reports false when an
// Invalidate happened since.
func (c *FacetsCache) Set(gen uint64, facets domain.PlaceFacets) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	c.facets = &facets
	c.cachedAt = time.Now()
	return true
}

// Invalidate drops the cached value so the next Get misses.
func (c *FacetsCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facets = nil
	c.generation++
}
