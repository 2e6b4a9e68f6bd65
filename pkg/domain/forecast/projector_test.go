package forecast

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

type noHolidays struct{}

func (noHolidays) Holidays(context.Context, time.Time, time.Time, string) ([]calendar.NonWorkingDay, error) {
	return nil, nil
}

func TestProjectCompletion_WalksPathAcrossWeekends(t *testing.T) {
	projector := NewProjector(calendar.NewOracle(noHolidays{}))

	path := schedule.CriticalPath{TaskIDs: []string{"a", "b", "c"}, TotalDays: 10}
	adjusted := []schedule.Task{
		{ID: "a", DurationDays: 2},
		{ID: "b", DurationDays: 0}, // complete, occupies its slot only
		{ID: "c", DurationDays: 3},
	}

	// Monday 2026-03-09; 5 working days land on the following Monday.
	start := day(2026, time.March, 9)
	got, err := projector.ProjectCompletion(context.Background(), path, adjusted, start, "")
	if err != nil {
		t.Fatalf("ProjectCompletion failed: %v", err)
	}

	if want := day(2026, time.March, 16); !got.CompletionDate.Equal(want) {
		t.Fatalf("expected completion %s, got %s",
			want.Format("2006-01-02"), got.CompletionDate.Format("2006-01-02"))
	}
	if got.WorkingDays != 5 {
		t.Fatalf("expected 5 working days, got %d", got.WorkingDays)
	}
}

func TestProjectCompletion_AllTasksComplete(t *testing.T) {
	projector := NewProjector(calendar.NewOracle(noHolidays{}))

	path := schedule.CriticalPath{TaskIDs: []string{"a", "b"}, TotalDays: 12}
	adjusted := []schedule.Task{
		{ID: "a", DurationDays: 0},
		{ID: "b", DurationDays: 0},
	}

	start := day(2026, time.March, 9)
	got, err := projector.ProjectCompletion(context.Background(), path, adjusted, start, "")
	if err != nil {
		t.Fatalf("ProjectCompletion failed: %v", err)
	}

	if !got.CompletionDate.Equal(start) {
		t.Fatalf("expected cursor to stay at start, got %s", got.CompletionDate.Format("2006-01-02"))
	}
	if got.WorkingDays != 0 {
		t.Fatalf("expected 0 working days, got %d", got.WorkingDays)
	}
}

func TestProjectCompletion_EmptyPath(t *testing.T) {
	projector := NewProjector(calendar.NewOracle(noHolidays{}))

	start := day(2026, time.March, 9)
	got, err := projector.ProjectCompletion(context.Background(), schedule.CriticalPath{}, nil, start, "")
	if err != nil {
		t.Fatalf("ProjectCompletion failed: %v", err)
	}
	if !got.CompletionDate.Equal(start) {
		t.Fatalf("expected start date for empty path, got %s", got.CompletionDate.Format("2006-01-02"))
	}
}
