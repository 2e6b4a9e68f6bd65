// Package schedule models the task-dependency graph of a construction project
// and computes its critical path.
package schedule

import "time"

// Task is a unit of work as consumed by the forecasting engine.
type Task struct {
	// ID uniquely identifies the task within its project.
	ID string `json:"id" yaml:"id"`
	// Name is the human-readable task name.
	Name string `json:"name" yaml:"name"`
	// DurationDays is the estimated duration in working days.
	DurationDays int `json:"duration_days" yaml:"duration_days"`
	// Progress is the completion percentage, 0-100.
	Progress int `json:"progress" yaml:"progress"`
	// Completed marks the task as finished regardless of progress.
	Completed bool `json:"completed" yaml:"completed"`
	// DependsOn lists the IDs of tasks that must finish before this one starts.
	DependsOn []string `json:"depends_on" yaml:"depends_on"`
}

// RemainingFraction returns the fraction of work left on the task.
func (t Task) RemainingFraction() float64 {
	if t.Completed {
		return 0
	}
	p := t.Progress
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	return 1 - float64(p)/100
}

// ProgressEntry records a progress update for a task. Entries are append-only
// and immutable once written.
type ProgressEntry struct {
	TaskID    string    `json:"task_id"`
	Timestamp time.Time `json:"timestamp"`
	Progress  int       `json:"progress"`
}
