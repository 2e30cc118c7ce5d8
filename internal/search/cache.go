package search

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/MixOptimizer_Go/internal/metrics"
)

// resultCache provides an in-memory LRU cache of search outcomes keyed by
// catalog and filter fingerprints, with time-based expiration. A nil
// Result records that the search found no admissible candidate.
type resultCache struct {
	lru *expirable.LRU[string, *Result]
}

// newResultCache creates a cache holding at most size outcomes for ttl each.
// A zero ttl keeps entries until evicted.
func newResultCache(size int, ttl time.Duration) *resultCache {
	return &resultCache{
		lru: expirable.NewLRU[string, *Result](size, nil, ttl),
	}
}

func cacheKey(catalogFingerprint, filterFingerprint string) string {
	return catalogFingerprint + ":" + filterFingerprint
}

// Get returns the cached outcome and whether one was found.
func (c *resultCache) Get(key string) (*Result, bool) {
	res, found := c.lru.Get(key)
	if !found {
		metrics.SearchCacheEntries.Set(float64(c.Len()))
	}
	return res, found
}

// Set stores an outcome.
func (c *resultCache) Set(key string, res *Result) {
	c.lru.Add(key, res)
	metrics.SearchCacheEntries.Set(float64(c.Len()))
}

// Len returns the number of cached outcomes.
func (c *resultCache) Len() int {
	return c.lru.Len()
}
