package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultCacheMaxEntries bounds the memory cache when no size is configured.
const DefaultCacheMaxEntries = 1000

// MemoryCache is an in-process CacheRepository with LRU eviction once
// maxEntries is reached. A zero ttl keeps entries until they are evicted.
type MemoryCache struct {
	lru *expirable.LRU[string, string]
}

func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheMaxEntries
	}
	return &MemoryCache{
		lru: expirable.NewLRU[string, string](maxEntries, nil, ttl),
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	return m.lru.Get(key)
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	m.lru.Add(key, value)
	return nil
}

// Len reports how many entries are held.
func (m *MemoryCache) Len() int {
	return m.lru.Len()
}
