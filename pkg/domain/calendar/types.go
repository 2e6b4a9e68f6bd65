package calendar

import (
	"context"
	"time"
)

// Reason classifies why a date is not a working day.
type Reason string

const (
	// ReasonWeekend marks Saturdays and Sundays.
	ReasonWeekend Reason = "weekend"
	// ReasonHoliday marks externally configured regional holidays.
	ReasonHoliday Reason = "holiday"
)

// NonWorkingDay is a date on which no work is scheduled.
type NonWorkingDay struct {
	Date        time.Time `json:"date"`
	Reason      Reason    `json:"reason"`
	HolidayName string    `json:"holiday_name,omitempty"`
	Region      string    `json:"region,omitempty"`
}

// HolidaySource provides configured holidays for a region and date range.
// Holidays are unique per (region, date, name). An empty region selects
// region-independent holidays only.
type HolidaySource interface {
	Holidays(ctx context.Context, start, end time.Time, region string) ([]NonWorkingDay, error)
}
