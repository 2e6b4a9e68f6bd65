package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
	"github.com/felixgeelhaar/sitecast/pkg/domain/project"
	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

// Mutation helpers for the CRUD layer. Every write that changes a project's
// task graph or progress must be followed by a forecast invalidation; the
// caller owns that contract.

// CreateProject inserts a project.
func (s *SQLiteStore) CreateProject(ctx context.Context, p *project.Project) error {
	var startDate, planned interface{}
	if p.StartDate != nil {
		startDate = p.StartDate.Format(dateLayout)
	}
	if p.PlannedCompletion != nil {
		planned = p.PlannedCompletion.Format(dateLayout)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, region, start_date, planned_completion) VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Region, startDate, planned)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// AddMember grants a user access to a project.
func (s *SQLiteStore) AddMember(ctx context.Context, projectID, userID, role string) error {
	if role == "" {
		role = "member"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO project_members (project_id, user_id, role) VALUES (?, ?, ?)
		 ON CONFLICT (project_id, user_id) DO UPDATE SET role = excluded.role`,
		projectID, userID, role)
	if err != nil {
		return fmt.Errorf("insert member: %w", err)
	}
	return nil
}

// SaveTask inserts or updates a task. Dependency edges are managed through
// AddDependency so the cycle check cannot be bypassed.
func (s *SQLiteStore) SaveTask(ctx context.Context, projectID string, t schedule.Task) error {
	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("task %s: progress %d out of range [0, 100]", t.ID, t.Progress)
	}
	if t.DurationDays < 0 {
		return fmt.Errorf("task %s: duration must not be negative", t.ID)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (id, project_id, name, duration_days, progress, completed)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			duration_days = excluded.duration_days,
			progress = excluded.progress,
			completed = excluded.completed`,
		t.ID, projectID, t.Name, t.DurationDays, t.Progress, t.Completed)
	if err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// AddDependency records that taskID depends on dependsOnID. Self-edges,
// duplicates, and edges that would close a cycle are rejected before the
// write: acyclicity is enforced here, at the mutation boundary, not in the
// forecaster.
func (s *SQLiteStore) AddDependency(ctx context.Context, projectID, taskID, dependsOnID string) error {
	tasks, err := s.TasksForProject(ctx, projectID)
	if err != nil {
		return err
	}
	if err := schedule.ValidateNewDependency(tasks, taskID, dependsOnID); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO task_dependencies (task_id, depends_on_id) VALUES (?, ?)`,
		taskID, dependsOnID)
	if err != nil {
		return fmt.Errorf("insert dependency: %w", err)
	}
	return nil
}

// RemoveDependency deletes a dependency edge.
func (s *SQLiteStore) RemoveDependency(ctx context.Context, taskID, dependsOnID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM task_dependencies WHERE task_id = ? AND depends_on_id = ?`,
		taskID, dependsOnID)
	if err != nil {
		return fmt.Errorf("delete dependency: %w", err)
	}
	return nil
}

// RecordProgress appends an immutable progress-history entry and updates the
// task's current progress. Reaching 100% marks the task completed.
func (s *SQLiteStore) RecordProgress(ctx context.Context, projectID, taskID string, progress int, at time.Time) error {
	if progress < 0 || progress > 100 {
		return fmt.Errorf("task %s: progress %d out of range [0, 100]", taskID, progress)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE tasks SET progress = ?, completed = ? WHERE id = ? AND project_id = ?`,
		progress, progress == 100, taskID, projectID)
	if err != nil {
		return fmt.Errorf("update task progress: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("task %s: %w", taskID, schedule.ErrUnknownTask)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO progress_history (project_id, task_id, progress, recorded_at) VALUES (?, ?, ?, ?)`,
		projectID, taskID, progress, at.UTC()); err != nil {
		return fmt.Errorf("insert progress entry: %w", err)
	}

	return tx.Commit()
}

// AddHoliday configures a holiday for a region. An empty region applies to
// all regions.
func (s *SQLiteStore) AddHoliday(ctx context.Context, h calendar.NonWorkingDay) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO holidays (region, date, name) VALUES (?, ?, ?)
		 ON CONFLICT (region, date, name) DO NOTHING`,
		h.Region, h.Date.Format(dateLayout), h.HolidayName)
	if err != nil {
		return fmt.Errorf("insert holiday: %w", err)
	}
	return nil
}
