package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

// Risk thresholds, in days of gap between projected and planned completion.
const (
	highRiskGapDays   = 30
	mediumRiskGapDays = 14
)

// AssessmentInput carries everything the assessor needs to classify risk and
// score confidence.
type AssessmentInput struct {
	// Projected is the projected completion date.
	Projected time.Time
	// Planned is the planned completion date, nil when none was set.
	Planned *time.Time
	// Tasks is the project's full task list with current progress.
	Tasks []schedule.Task
	// HistoryLen is the total number of progress-history entries.
	HistoryLen int
	// Path is the critical path the projection walked.
	Path schedule.CriticalPath
	// WorkingDays is the total projected working days.
	WorkingDays int
}

// Assessment is the risk classification and confidence score for a forecast.
type Assessment struct {
	Risk        RiskLevel
	Confidence  int
	Explanation string
}

// Assess classifies schedule risk and computes a confidence score.
//
// Risk is evaluated in order: a projected-vs-planned gap over 30 days is
// high, over 14 days is medium; otherwise the progress distribution of
// incomplete tasks decides. Without a planned date there is no basis to
// compare, and the assessment defaults to medium.
func Assess(in AssessmentInput) Assessment {
	risk := assessRisk(in)
	confidence := scoreConfidence(in.HistoryLen, in.Tasks)
	return Assessment{
		Risk:        risk,
		Confidence:  confidence,
		Explanation: explain(in, risk, confidence),
	}
}

func assessRisk(in AssessmentInput) RiskLevel {
	if in.Planned == nil {
		return RiskMedium
	}

	gap := daysBetween(*in.Planned, in.Projected)
	if gap > highRiskGapDays {
		return RiskHigh
	}
	if gap > mediumRiskGapDays {
		return RiskMedium
	}

	incomplete := 0
	progressSum := 0
	for _, t := range in.Tasks {
		if t.Completed {
			continue
		}
		incomplete++
		progressSum += t.Progress
	}
	if incomplete == 0 {
		return RiskLow
	}

	mean := float64(progressSum) / float64(incomplete)
	if mean < 30 && incomplete > 5 {
		return RiskHigh
	}
	if mean < 50 {
		return RiskMedium
	}
	return RiskLow
}

// scoreConfidence starts at 50, adds up to 30 for history depth and up to 20
// for completion ratio, clamped to [0, 100].
func scoreConfidence(historyLen int, tasks []schedule.Task) int {
	score := 50

	switch {
	case historyLen > 20:
		score += 30
	case historyLen > 10:
		score += 20
	case historyLen > 5:
		score += 10
	}

	if len(tasks) > 0 {
		completed := 0
		for _, t := range tasks {
			if t.Completed {
				completed++
			}
		}
		ratio := float64(completed) / float64(len(tasks))
		score += int(math.Round(ratio * 20))
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

func explain(in AssessmentInput, risk RiskLevel, confidence int) string {
	date := in.Projected.Format("2006-01-02")

	delta := "no planned completion date is set"
	if in.Planned != nil {
		gap := daysBetween(*in.Planned, in.Projected)
		switch {
		case gap > 0:
			delta = fmt.Sprintf("%d days later than planned", gap)
		case gap < 0:
			delta = fmt.Sprintf("%d days ahead of plan", -gap)
		default:
			delta = "on schedule"
		}
	}

	return fmt.Sprintf(
		"Projected completion on %s (%s). Risk level: %s. The critical path spans %d tasks over %d working days. Confidence: %d%%.",
		date, delta, risk, in.Path.Length(), in.WorkingDays, confidence,
	)
}

// daysBetween returns the whole-day difference to - from.
func daysBetween(from, to time.Time) int {
	fromDate := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDate := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Round(toDate.Sub(fromDate).Hours() / 24))
}
