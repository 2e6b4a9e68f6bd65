package forecast

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

// Projector walks a critical path in order and advances a date cursor by each
// task's adjusted duration in working days.
type Projector struct {
	cal *calendar.Oracle
}

// NewProjector creates a Projector backed by the given calendar oracle.
func NewProjector(cal *calendar.Oracle) *Projector {
	return &Projector{cal: cal}
}

// Projection is the result of walking the critical path.
type Projection struct {
	// CompletionDate is where the cursor landed after the last task.
	CompletionDate time.Time
	// WorkingDays is the total number of working days consumed.
	WorkingDays int
}

// ProjectCompletion walks the critical path using the adjusted task
// durations. Tasks with zero adjusted duration (already complete) occupy
// their slot on the path but do not advance the cursor.
func (p *Projector) ProjectCompletion(ctx context.Context, path schedule.CriticalPath, adjusted []schedule.Task, start time.Time, region string) (Projection, error) {
	durations := make(map[string]int, len(adjusted))
	for _, t := range adjusted {
		durations[t.ID] = t.DurationDays
	}

	cursor := start
	total := 0
	for _, id := range path.TaskIDs {
		days := durations[id]
		if days <= 0 {
			continue
		}
		next, err := p.cal.AddWorkingDays(ctx, cursor, days, region)
		if err != nil {
			return Projection{}, fmt.Errorf("advance %d working days for task %s: %w", days, id, err)
		}
		cursor = next
		total += days
	}

	return Projection{CompletionDate: cursor, WorkingDays: total}, nil
}
