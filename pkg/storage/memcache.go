package storage

import (
	"context"
	"sync"
	"time"

	"github.com/felixgeelhaar/sitecast/pkg/domain/forecast"
)

type cacheEntry struct {
	forecast  *forecast.Forecast
	expiresAt time.Time
	freshness *forecast.FreshnessMachine
}

// MemoryCache is an in-process implementation of forecast.Cache. Each entry
// carries a freshness machine so explicit invalidation and TTL expiry follow
// the same fresh/stale lifecycle.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory forecast cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*cacheEntry),
		now:     time.Now,
	}
}

// WithClock overrides the cache's time source. Use only in tests.
func (c *MemoryCache) WithClock(now func() time.Time) *MemoryCache {
	c.now = now
	return c
}

// Get returns the cached forecast if a fresh, unexpired entry exists.
func (c *MemoryCache) Get(_ context.Context, projectID string) (*forecast.Forecast, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[projectID]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		e.freshness.Send(forecast.EventExpire)
		delete(c.entries, projectID)
		return nil, false, nil
	}
	if !e.freshness.IsFresh() {
		return nil, false, nil
	}
	return e.forecast, true, nil
}

// Set stores the forecast with the given TTL, replacing any previous entry.
func (c *MemoryCache) Set(_ context.Context, projectID string, f *forecast.Forecast, ttl time.Duration) error {
	machine, err := forecast.NewFreshnessMachine(projectID)
	if err != nil {
		return err
	}
	machine.Send(forecast.EventRefresh)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[projectID] = &cacheEntry{
		forecast:  f,
		expiresAt: c.now().Add(ttl),
		freshness: machine,
	}
	return nil
}

// Delete removes the entry for the project, if any.
func (c *MemoryCache) Delete(_ context.Context, projectID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[projectID]; ok {
		e.freshness.Send(forecast.EventInvalidate)
		delete(c.entries, projectID)
	}
	return nil
}

// Purge invalidates every entry. Used when a calendar change makes all
// cached forecasts stale at once.
func (c *MemoryCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, e := range c.entries {
		e.freshness.Send(forecast.EventInvalidate)
		delete(c.entries, id)
	}
}

// Len returns the number of cached entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
