// Package analytics derives velocity heuristics from historical progress
// updates and adjusts remaining duration estimates accordingly.
package analytics

import (
	"math"

	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

const (
	// minHistoryEntries is the number of progress updates that must exist
	// before any velocity adjustment is applied.
	minHistoryEntries = 5
	// recentWindow is how many of the most recent entries feed the multiplier.
	recentWindow = 10
)

// Multiplier maps recent progress history to a duration multiplier.
//
// The mean progress of the last ten entries classifies the team's pace:
// below 30% the team is slow and remaining durations are inflated by 1.3x,
// below 50% by 1.15x, above 80% the team is fast and durations are deflated
// to 0.9x. Anything in between leaves estimates unchanged. Fewer than six
// entries is not enough signal, so no adjustment is applied at all.
func Multiplier(history []schedule.ProgressEntry) float64 {
	if len(history) <= minHistoryEntries {
		return 1.0
	}

	recent := history
	if len(recent) > recentWindow {
		recent = recent[len(recent)-recentWindow:]
	}

	sum := 0
	for _, e := range recent {
		sum += e.Progress
	}
	mean := float64(sum) / float64(len(recent))

	switch {
	case mean < 30:
		return 1.3
	case mean < 50:
		return 1.15
	case mean > 80:
		return 0.9
	default:
		return 1.0
	}
}

// AdjustRemaining returns a copy of tasks with DurationDays replaced by the
// velocity-adjusted remaining duration. Completed tasks drop to zero;
// everything else, including dependency links, is preserved so the list can
// feed the completion-date walk.
//
// The critical path itself is computed on original durations before this
// adjustment is layered on: path shape comes from raw estimates, date math
// from adjusted ones.
func AdjustRemaining(tasks []schedule.Task, multiplier float64) []schedule.Task {
	adjusted := make([]schedule.Task, len(tasks))
	for i, t := range tasks {
		adjusted[i] = t
		if t.Completed {
			adjusted[i].DurationDays = 0
			continue
		}
		remaining := float64(t.DurationDays) * multiplier * t.RemainingFraction()
		adjusted[i].DurationDays = int(math.Ceil(remaining))
	}
	return adjusted
}
