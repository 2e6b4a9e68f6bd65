package domain

import (
	"context"
	"time"

	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
	"github.com/felixgeelhaar/sitecast/pkg/domain/forecast"
	"github.com/felixgeelhaar/sitecast/pkg/domain/project"
	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

// ProjectStore is the persistence contract the forecasting engine consumes.
// The CRUD layer owns all writes to projects and tasks; the engine only reads
// them and appends to the forecast log.
type ProjectStore interface {
	// Project returns the project or project.ErrNotFound.
	Project(ctx context.Context, projectID string) (*project.Project, error)

	// MemberHasAccess reports whether the user may read the project.
	MemberHasAccess(ctx context.Context, projectID, userID string) (bool, error)

	// TasksForProject returns all tasks of a project with their dependency
	// edges resolved into DependsOn lists.
	TasksForProject(ctx context.Context, projectID string) ([]schedule.Task, error)

	// ProgressHistory returns all progress updates for the project's tasks,
	// ordered oldest first.
	ProgressHistory(ctx context.Context, projectID string) ([]schedule.ProgressEntry, error)

	// AppendForecast appends a forecast record to the historical log.
	// Records are never edited.
	AppendForecast(ctx context.Context, f *forecast.Forecast) error

	// ListForecasts returns the forecast log for a project, newest first.
	ListForecasts(ctx context.Context, projectID string, limit int) ([]*forecast.Forecast, error)

	// Holidays returns configured holidays for the region and range,
	// satisfying calendar.HolidaySource.
	Holidays(ctx context.Context, start, end time.Time, region string) ([]calendar.NonWorkingDay, error)
}
