package forecast

import (
	"context"
	"time"
)

// DefaultTTL bounds how long a cached forecast stays fresh without explicit
// invalidation.
const DefaultTTL = time.Hour

// Cache stores the last computed forecast per project with a bounded
// lifetime. Implementations are best-effort collaborators: the orchestrator
// logs and recovers from cache errors rather than failing the forecast.
type Cache interface {
	// Get returns the cached forecast for the project, or ok=false when no
	// fresh entry exists.
	Get(ctx context.Context, projectID string) (f *Forecast, ok bool, err error)
	// Set stores the forecast with the given time-to-live, replacing any
	// previous entry.
	Set(ctx context.Context, projectID string, f *Forecast, ttl time.Duration) error
	// Delete removes the entry for the project, if any.
	Delete(ctx context.Context, projectID string) error
}
