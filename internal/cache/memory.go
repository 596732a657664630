package cache

import (
	"context"
	"sync"
	"time"

	"StockSentinel/internal/model"
)

type entry struct {
	result  model.AnalysisResult
	expires time.Time
}

// MemoryCache is a process-local Cache used when no Redis address is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get returns a copy so callers cannot mutate the cached value.
func (c *MemoryCache) Get(_ context.Context, symbol string) (*model.AnalysisResult, error) {
	c.mu.RLock()
	e, ok := c.entries[key(symbol)]
	c.mu.RUnlock()
	if !ok || !c.now().Before(e.expires) {
		return nil, nil
	}
	r := cloneResult(e.result)
	return &r, nil
}

func (c *MemoryCache) Set(_ context.Context, symbol string, result *model.AnalysisResult) error {
	if result == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key(symbol)] = entry{result: cloneResult(*result), expires: c.now().Add(c.ttl)}
	c.evictExpired()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, symbol string) error {
	c.mu.Lock()
	delete(c.entries, key(symbol))
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Close() error { return nil }

// evictExpired must be called with mu held.
func (c *MemoryCache) evictExpired() {
	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
}

func cloneResult(r model.AnalysisResult) model.AnalysisResult {
	r.Reasons = append([]string(nil), r.Reasons...)
	if r.StopLoss != nil {
		v := *r.StopLoss
		r.StopLoss = &v
	}
	if r.Target != nil {
		v := *r.Target
		r.Target = &v
	}
	return r
}
