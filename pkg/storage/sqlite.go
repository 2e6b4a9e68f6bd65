// Package storage provides the SQLite-backed project store and the forecast
// cache implementations.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
	_ "modernc.org/sqlite"

	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
	"github.com/felixgeelhaar/sitecast/pkg/domain/forecast"
	"github.com/felixgeelhaar/sitecast/pkg/domain/project"
	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

const dateLayout = "2006-01-02"

// SQLiteStore implements domain.ProjectStore on SQLite. It also carries the
// mutation helpers the CRUD layer needs (task, dependency, progress, holiday
// writes) so the dependency-graph invariants are enforced in one place.
type SQLiteStore struct {
	db          *sql.DB
	retryConfig retry.Config
}

// NewSQLiteStore opens (or creates) a SQLite store at the given path.
// Enables WAL mode, foreign keys, and a busy timeout.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create parent directories: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", dbPath)
	return openStore(ctx, connStr)
}

// NewMemoryStore creates an in-memory store for testing. A shared cache lets
// multiple connections see the same database.
func NewMemoryStore(ctx context.Context) (*SQLiteStore, error) {
	return openStore(ctx, "file::memory:?mode=memory&cache=shared")
}

func openStore(ctx context.Context, connStr string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// modernc.org/sqlite needs the pragma; the connection string form is
	// not supported.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db.SetMaxOpenConns(2)

	store := &SQLiteStore{
		db: db,
		retryConfig: retry.Config{
			MaxAttempts:   3,
			InitialDelay:  10 * time.Millisecond,
			BackoffPolicy: retry.BackoffExponential,
		},
	}
	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		region TEXT NOT NULL DEFAULT '',
		start_date TEXT,
		planned_completion TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS project_members (
		project_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		PRIMARY KEY (project_id, user_id),
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		name TEXT NOT NULL,
		duration_days INTEGER NOT NULL,
		progress INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);

	CREATE TABLE IF NOT EXISTS task_dependencies (
		task_id TEXT NOT NULL,
		depends_on_id TEXT NOT NULL,
		PRIMARY KEY (task_id, depends_on_id),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
		FOREIGN KEY (depends_on_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_task_dependencies_task_id ON task_dependencies(task_id);

	CREATE TABLE IF NOT EXISTS progress_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		project_id TEXT NOT NULL,
		task_id TEXT NOT NULL,
		progress INTEGER NOT NULL,
		recorded_at DATETIME NOT NULL,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_progress_history_project_recorded
		ON progress_history(project_id, recorded_at);

	CREATE TABLE IF NOT EXISTS holidays (
		region TEXT NOT NULL,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		PRIMARY KEY (region, date, name)
	);

	CREATE TABLE IF NOT EXISTS forecasts (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		estimated_completion TEXT NOT NULL,
		risk TEXT NOT NULL,
		confidence INTEGER NOT NULL,
		explanation TEXT NOT NULL,
		critical_path TEXT NOT NULL,
		working_days INTEGER NOT NULL,
		generated_at DATETIME NOT NULL,
		FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_forecasts_project_generated
		ON forecasts(project_id, generated_at);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Project returns the project or project.ErrNotFound.
func (s *SQLiteStore) Project(ctx context.Context, projectID string) (*project.Project, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, region, start_date, planned_completion, created_at FROM projects WHERE id = ?`,
		projectID)

	var p project.Project
	var startDate, planned sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.Region, &startDate, &planned, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", projectID, project.ErrNotFound)
		}
		return nil, fmt.Errorf("query project: %w", err)
	}

	if startDate.Valid {
		d, err := time.Parse(dateLayout, startDate.String)
		if err != nil {
			return nil, fmt.Errorf("parse start date: %w", err)
		}
		p.StartDate = &d
	}
	if planned.Valid {
		d, err := time.Parse(dateLayout, planned.String)
		if err != nil {
			return nil, fmt.Errorf("parse planned completion: %w", err)
		}
		p.PlannedCompletion = &d
	}
	return &p, nil
}

// MemberHasAccess reports whether the user is a member of the project.
func (s *SQLiteStore) MemberHasAccess(ctx context.Context, projectID, userID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM project_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query membership: %w", err)
	}
	return count > 0, nil
}

// TasksForProject returns all tasks with their dependency lists resolved.
func (s *SQLiteStore) TasksForProject(ctx context.Context, projectID string) ([]schedule.Task, error) {
	retryer := retry.New[[]schedule.Task](s.retryConfig)

	return retryer.Do(ctx, func(ctx context.Context) ([]schedule.Task, error) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT id, name, duration_days, progress, completed FROM tasks WHERE project_id = ? ORDER BY created_at, id`,
			projectID)
		if err != nil {
			return nil, fmt.Errorf("query tasks: %w", err)
		}
		defer rows.Close()

		var tasks []schedule.Task
		index := make(map[string]int)
		for rows.Next() {
			var t schedule.Task
			if err := rows.Scan(&t.ID, &t.Name, &t.DurationDays, &t.Progress, &t.Completed); err != nil {
				return nil, fmt.Errorf("scan task: %w", err)
			}
			index[t.ID] = len(tasks)
			tasks = append(tasks, t)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate tasks: %w", err)
		}

		depRows, err := s.db.QueryContext(ctx,
			`SELECT d.task_id, d.depends_on_id
			 FROM task_dependencies d JOIN tasks t ON t.id = d.task_id
			 WHERE t.project_id = ?
			 ORDER BY d.task_id, d.depends_on_id`,
			projectID)
		if err != nil {
			return nil, fmt.Errorf("query dependencies: %w", err)
		}
		defer depRows.Close()

		for depRows.Next() {
			var taskID, dependsOn string
			if err := depRows.Scan(&taskID, &dependsOn); err != nil {
				return nil, fmt.Errorf("scan dependency: %w", err)
			}
			if i, ok := index[taskID]; ok {
				tasks[i].DependsOn = append(tasks[i].DependsOn, dependsOn)
			}
		}
		if err := depRows.Err(); err != nil {
			return nil, fmt.Errorf("iterate dependencies: %w", err)
		}
		return tasks, nil
	})
}

// ProgressHistory returns all progress updates for the project, oldest first.
func (s *SQLiteStore) ProgressHistory(ctx context.Context, projectID string) ([]schedule.ProgressEntry, error) {
	retryer := retry.New[[]schedule.ProgressEntry](s.retryConfig)

	return retryer.Do(ctx, func(ctx context.Context) ([]schedule.ProgressEntry, error) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT task_id, progress, recorded_at FROM progress_history
			 WHERE project_id = ? ORDER BY recorded_at, id`,
			projectID)
		if err != nil {
			return nil, fmt.Errorf("query progress history: %w", err)
		}
		defer rows.Close()

		var entries []schedule.ProgressEntry
		for rows.Next() {
			var e schedule.ProgressEntry
			if err := rows.Scan(&e.TaskID, &e.Progress, &e.Timestamp); err != nil {
				return nil, fmt.Errorf("scan progress entry: %w", err)
			}
			entries = append(entries, e)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate progress history: %w", err)
		}
		return entries, nil
	})
}

// AppendForecast appends a record to the forecast log. Records are never
// updated or deleted.
func (s *SQLiteStore) AppendForecast(ctx context.Context, f *forecast.Forecast) error {
	path, err := json.Marshal(f.CriticalPath)
	if err != nil {
		return fmt.Errorf("marshal critical path: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO forecasts (id, project_id, estimated_completion, risk, confidence, explanation, critical_path, working_days, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.ID, f.ProjectID, f.EstimatedCompletion.Format(dateLayout), string(f.Risk),
		f.Confidence, f.Explanation, string(path), f.WorkingDays, f.GeneratedAt)
	if err != nil {
		return fmt.Errorf("insert forecast: %w", err)
	}
	return nil
}

// ListForecasts returns the forecast log for a project, newest first.
// A limit of zero or less means no limit.
func (s *SQLiteStore) ListForecasts(ctx context.Context, projectID string, limit int) ([]*forecast.Forecast, error) {
	query := `SELECT id, project_id, estimated_completion, risk, confidence, explanation, critical_path, working_days, generated_at
		 FROM forecasts WHERE project_id = ? ORDER BY generated_at DESC, id`
	args := []interface{}{projectID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query forecasts: %w", err)
	}
	defer rows.Close()

	var forecasts []*forecast.Forecast
	for rows.Next() {
		var f forecast.Forecast
		var completion, path string
		var risk string
		if err := rows.Scan(&f.ID, &f.ProjectID, &completion, &risk, &f.Confidence,
			&f.Explanation, &path, &f.WorkingDays, &f.GeneratedAt); err != nil {
			return nil, fmt.Errorf("scan forecast: %w", err)
		}
		f.Risk = forecast.RiskLevel(risk)
		if f.EstimatedCompletion, err = time.Parse(dateLayout, completion); err != nil {
			return nil, fmt.Errorf("parse completion date: %w", err)
		}
		if err := json.Unmarshal([]byte(path), &f.CriticalPath); err != nil {
			return nil, fmt.Errorf("unmarshal critical path: %w", err)
		}
		forecasts = append(forecasts, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate forecasts: %w", err)
	}
	return forecasts, nil
}

// Holidays returns configured holidays in [start, end] for the region.
// Region-independent holidays (empty region) apply everywhere.
func (s *SQLiteStore) Holidays(ctx context.Context, start, end time.Time, region string) ([]calendar.NonWorkingDay, error) {
	retryer := retry.New[[]calendar.NonWorkingDay](s.retryConfig)

	return retryer.Do(ctx, func(ctx context.Context) ([]calendar.NonWorkingDay, error) {
		rows, err := s.db.QueryContext(ctx,
			`SELECT region, date, name FROM holidays
			 WHERE date >= ? AND date <= ? AND (region = ? OR region = '')
			 ORDER BY date, name`,
			start.Format(dateLayout), end.Format(dateLayout), region)
		if err != nil {
			return nil, fmt.Errorf("query holidays: %w", err)
		}
		defer rows.Close()

		var days []calendar.NonWorkingDay
		for rows.Next() {
			var d calendar.NonWorkingDay
			var date string
			if err := rows.Scan(&d.Region, &date, &d.HolidayName); err != nil {
				return nil, fmt.Errorf("scan holiday: %w", err)
			}
			if d.Date, err = time.Parse(dateLayout, date); err != nil {
				return nil, fmt.Errorf("parse holiday date: %w", err)
			}
			d.Reason = calendar.ReasonHoliday
			days = append(days, d)
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate holidays: %w", err)
		}
		return days, nil
	})
}
