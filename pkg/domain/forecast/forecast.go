// Package forecast models project completion forecasts: the projected date,
// risk classification, confidence scoring, and the cache contract that bounds
// recomputation.
package forecast

import (
	"time"
)

// RiskLevel classifies how likely a project is to miss its planned completion.
type RiskLevel string

const (
	// RiskLow indicates the project is on track.
	RiskLow RiskLevel = "low"
	// RiskMedium indicates moderate schedule pressure or insufficient data.
	RiskMedium RiskLevel = "medium"
	// RiskHigh indicates the project is likely to slip significantly.
	RiskHigh RiskLevel = "high"
)

// String returns the string representation of the risk level.
func (r RiskLevel) String() string {
	return string(r)
}

// IsValid returns true if the risk level is a known value.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	default:
		return false
	}
}

// Forecast is the derived completion prediction for a project at a point in
// time. Forecasts are never mutated: a new computation supersedes the old
// one, and the persistence layer keeps an append-only log.
type Forecast struct {
	// ID uniquely identifies this forecast record.
	ID string `json:"id"`
	// ProjectID is the project this forecast belongs to.
	ProjectID string `json:"project_id"`
	// EstimatedCompletion is the projected completion date.
	EstimatedCompletion time.Time `json:"estimated_completion"`
	// Risk classifies the schedule risk.
	Risk RiskLevel `json:"risk"`
	// Confidence is a 0-100 score for how much to trust the projection.
	Confidence int `json:"confidence"`
	// Explanation is a human-readable summary of the forecast.
	Explanation string `json:"explanation"`
	// CriticalPath is the ordered task-ID chain driving the completion date.
	CriticalPath []string `json:"critical_path"`
	// WorkingDays is the total projected working days along the path.
	WorkingDays int `json:"working_days"`
	// GeneratedAt is when this forecast was computed.
	GeneratedAt time.Time `json:"generated_at"`
}
