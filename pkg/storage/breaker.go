package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/felixgeelhaar/sitecast/pkg/domain/forecast"
)

// BreakerCache wraps a forecast.Cache with a circuit breaker so a failing
// cache backend degrades to recomputation instead of adding latency to every
// forecast request. The orchestrator already treats cache errors as
// best-effort, so a tripped breaker just surfaces as a miss.
type BreakerCache struct {
	inner forecast.Cache
	cb    *gobreaker.CircuitBreaker
}

type cacheGetResult struct {
	forecast *forecast.Forecast
	ok       bool
}

// NewBreakerCache wraps the given cache with a circuit breaker.
func NewBreakerCache(inner forecast.Cache) *BreakerCache {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "forecast-cache",
		MaxRequests: 3,
		Interval:    0,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("cache circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return &BreakerCache{inner: inner, cb: cb}
}

// Get reads through the breaker. An open breaker reports a miss-with-error,
// which the orchestrator logs and treats as a recompute.
func (c *BreakerCache) Get(ctx context.Context, projectID string) (*forecast.Forecast, bool, error) {
	v, err := c.cb.Execute(func() (interface{}, error) {
		f, ok, err := c.inner.Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return cacheGetResult{forecast: f, ok: ok}, nil
	})
	if err != nil {
		return nil, false, err
	}
	res := v.(cacheGetResult)
	return res.forecast, res.ok, nil
}

// Set writes through the breaker.
func (c *BreakerCache) Set(ctx context.Context, projectID string, f *forecast.Forecast, ttl time.Duration) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.inner.Set(ctx, projectID, f, ttl)
	})
	return err
}

// Delete deletes through the breaker.
func (c *BreakerCache) Delete(ctx context.Context, projectID string) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.inner.Delete(ctx, projectID)
	})
	return err
}
