// Package application composes the forecasting pipeline behind a single
// GenerateForecast entry point.
package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/felixgeelhaar/sitecast/pkg/domain"
	"github.com/felixgeelhaar/sitecast/pkg/domain/analytics"
	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
	"github.com/felixgeelhaar/sitecast/pkg/domain/forecast"
	"github.com/felixgeelhaar/sitecast/pkg/domain/project"
	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

// ForecastService orchestrates forecast generation: cache check, task-graph
// load, critical-path computation, velocity adjustment, completion
// projection, risk assessment, persistence, and cache write.
type ForecastService struct {
	store     domain.ProjectStore
	cache     forecast.Cache
	projector *forecast.Projector
	logger    *slog.Logger
	ttl       time.Duration
	now       func() time.Time
	group     singleflight.Group
}

// ForecastServiceOption customizes a ForecastService.
type ForecastServiceOption func(*ForecastService)

// WithTTL overrides the cache time-to-live.
func WithTTL(ttl time.Duration) ForecastServiceOption {
	return func(s *ForecastService) { s.ttl = ttl }
}

// WithClock overrides the time source. Use only in tests.
func WithClock(now func() time.Time) ForecastServiceOption {
	return func(s *ForecastService) { s.now = now }
}

// WithLogger overrides the default logger.
func WithLogger(logger *slog.Logger) ForecastServiceOption {
	return func(s *ForecastService) { s.logger = logger }
}

// NewForecastService creates a forecast service.
func NewForecastService(store domain.ProjectStore, cache forecast.Cache, cal *calendar.Oracle, opts ...ForecastServiceOption) *ForecastService {
	s := &ForecastService{
		store:     store,
		cache:     cache,
		projector: forecast.NewProjector(cal),
		logger:    slog.Default(),
		ttl:       forecast.DefaultTTL,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateForecast returns the completion forecast for a project.
//
// A fresh cached forecast is returned as-is with no recomputation and no
// persistence write. On a cache miss the full pipeline runs; concurrent
// misses for the same project are collapsed into one computation via
// singleflight. Cache failures on either path are logged and recovered, not
// surfaced.
//
// Returns project.ErrNotFound when the project is missing or the user lacks
// access, and project.ErrNoTasks when there is nothing to schedule.
func (s *ForecastService) GenerateForecast(ctx context.Context, projectID, userID string) (*forecast.Forecast, error) {
	pid, err := domain.NewProjectID(projectID)
	if err != nil {
		return nil, err
	}
	uid, err := domain.NewUserID(userID)
	if err != nil {
		return nil, err
	}

	p, err := s.store.Project(ctx, pid.String())
	if err != nil {
		return nil, err
	}
	ok, err := s.store.MemberHasAccess(ctx, pid.String(), uid.String())
	if err != nil {
		return nil, fmt.Errorf("check project access: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("project %s: %w", pid, project.ErrNotFound)
	}

	if cached, hit, err := s.cache.Get(ctx, pid.String()); err != nil {
		s.logger.Warn("forecast cache read failed", "project", pid.String(), "error", err)
	} else if hit {
		return cached, nil
	}

	// Two concurrent misses would otherwise both recompute; last write wins
	// either way, but there is no reason to do the work twice.
	v, err, _ := s.group.Do(pid.String(), func() (interface{}, error) {
		return s.compute(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return v.(*forecast.Forecast), nil
}

// compute runs the full pipeline on a cache miss.
func (s *ForecastService) compute(ctx context.Context, p *project.Project) (*forecast.Forecast, error) {
	tasks, err := s.store.TasksForProject(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, fmt.Errorf("project %s: %w", p.ID, project.ErrNoTasks)
	}

	history, err := s.store.ProgressHistory(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("load progress history: %w", err)
	}

	// Path shape comes from the raw estimates; the adjusted durations only
	// feed the date walk below.
	path, err := schedule.ComputeCriticalPath(tasks)
	if err != nil {
		s.logger.Error("dependency graph failed to resolve, cycle check was bypassed upstream",
			"project", p.ID, "error", err)
		return nil, err
	}

	multiplier := analytics.Multiplier(history)
	adjusted := analytics.AdjustRemaining(tasks, multiplier)

	start := s.now()
	if p.StartDate != nil {
		start = *p.StartDate
	}

	projection, err := s.projector.ProjectCompletion(ctx, path, adjusted, start, p.Region)
	if err != nil {
		return nil, err
	}

	assessment := forecast.Assess(forecast.AssessmentInput{
		Projected:   projection.CompletionDate,
		Planned:     p.PlannedCompletion,
		Tasks:       tasks,
		HistoryLen:  len(history),
		Path:        path,
		WorkingDays: projection.WorkingDays,
	})

	f := &forecast.Forecast{
		ID:                  uuid.NewString(),
		ProjectID:           p.ID,
		EstimatedCompletion: projection.CompletionDate,
		Risk:                assessment.Risk,
		Confidence:          assessment.Confidence,
		Explanation:         assessment.Explanation,
		CriticalPath:        path.TaskIDs,
		WorkingDays:         projection.WorkingDays,
		GeneratedAt:         s.now(),
	}

	if err := s.store.AppendForecast(ctx, f); err != nil {
		return nil, fmt.Errorf("persist forecast: %w", err)
	}

	if err := s.cache.Set(ctx, p.ID, f, s.ttl); err != nil {
		s.logger.Warn("forecast cache write failed", "project", p.ID, "error", err)
	}

	return f, nil
}

// InvalidateForecast drops the cached forecast for a project. Every task,
// dependency, or progress mutation must call this. It never fails the
// caller; cache errors are logged and swallowed.
func (s *ForecastService) InvalidateForecast(ctx context.Context, projectID string) {
	if err := s.cache.Delete(ctx, projectID); err != nil {
		s.logger.Warn("forecast cache invalidation failed", "project", projectID, "error", err)
	}
}

// History returns the persisted forecast log for a project, newest first.
func (s *ForecastService) History(ctx context.Context, projectID string, limit int) ([]*forecast.Forecast, error) {
	return s.store.ListForecasts(ctx, projectID, limit)
}
