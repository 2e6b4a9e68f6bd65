// Package calendar answers working-day questions: which dates in a range are
// non-working (weekends plus configured regional holidays), what date lies N
// working days after a start date, and how many working days a range spans.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// ErrNegativeWorkingDays indicates a request to add a negative number of
// working days, which is a validation error.
var ErrNegativeWorkingDays = errors.New("working days to add must not be negative")

// windowFactor is the empirical buffer for the bulk-fetch window when adding
// working days: roughly 70% of calendar days are working days, so N working
// days fit inside ceil(N*1.4) calendar days in the common case.
const windowFactor = 1.4

// Oracle classifies dates as working or non-working and performs working-day
// arithmetic on top of a HolidaySource.
type Oracle struct {
	holidays HolidaySource
}

// NewOracle creates an Oracle backed by the given holiday source.
func NewOracle(holidays HolidaySource) *Oracle {
	return &Oracle{holidays: holidays}
}

// dateKey normalizes a time to its calendar date.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// truncateToDate drops the time-of-day component.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// NonWorkingDays enumerates every non-working day in [start, end] inclusive
// for the given region, sorted by date. A holiday falling on a weekend is
// reported once, as a weekend.
func (o *Oracle) NonWorkingDays(ctx context.Context, start, end time.Time, region string) ([]NonWorkingDay, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return nil, nil
	}

	holidays, err := o.holidays.Holidays(ctx, start, end, region)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	holidayByDate := make(map[string]NonWorkingDay, len(holidays))
	for _, h := range holidays {
		holidayByDate[dateKey(h.Date)] = h
	}

	var days []NonWorkingDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if isWeekend(d) {
			days = append(days, NonWorkingDay{Date: d, Reason: ReasonWeekend, Region: region})
			continue
		}
		if h, ok := holidayByDate[dateKey(d)]; ok {
			days = append(days, NonWorkingDay{Date: d, Reason: ReasonHoliday, HolidayName: h.HolidayName, Region: region})
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date) })
	return days, nil
}

// AddWorkingDays returns the date n working days after start. Zero returns
// start unchanged; negative n is a validation error.
//
// Rather than querying the holiday source once per day, the oracle fetches
// non-working days for an estimated window up front and walks day by day,
// extending the window in the rare case the estimate falls short.
func (o *Oracle) AddWorkingDays(ctx context.Context, start time.Time, n int, region string) (time.Time, error) {
	if n < 0 {
		return time.Time{}, fmt.Errorf("add %d working days: %w", n, ErrNegativeWorkingDays)
	}
	start = truncateToDate(start)
	if n == 0 {
		return start, nil
	}

	windowEnd := start.AddDate(0, 0, int(math.Ceil(float64(n)*windowFactor)))
	nonWorking, err := o.nonWorkingSet(ctx, start, windowEnd, region)
	if err != nil {
		return time.Time{}, err
	}

	cursor := start
	counted := 0
	for counted < n {
		cursor = cursor.AddDate(0, 0, 1)
		if cursor.After(windowEnd) {
			// The buffer underestimated the holiday density; extend.
			nextEnd := windowEnd.AddDate(0, 0, int(math.Ceil(float64(n-counted)*windowFactor))+7)
			more, err := o.nonWorkingSet(ctx, windowEnd.AddDate(0, 0, 1), nextEnd, region)
			if err != nil {
				return time.Time{}, err
			}
			for k := range more {
				nonWorking[k] = struct{}{}
			}
			windowEnd = nextEnd
		}
		if _, skip := nonWorking[dateKey(cursor)]; !skip {
			counted++
		}
	}
	return cursor, nil
}

// WorkingDaysBetween counts the working days in [start, end] inclusive,
// floored at zero.
func (o *Oracle) WorkingDaysBetween(ctx context.Context, start, end time.Time, region string) (int, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if end.Before(start) {
		return 0, nil
	}

	// Round guards against DST-shortened days skewing the division.
	total := int(math.Round(end.Sub(start).Hours()/24)) + 1
	nonWorking, err := o.NonWorkingDays(ctx, start, end, region)
	if err != nil {
		return 0, err
	}

	working := total - len(nonWorking)
	if working < 0 {
		working = 0
	}
	return working, nil
}

// IsWorkingDay reports whether the given date is a working day for the region.
func (o *Oracle) IsWorkingDay(ctx context.Context, date time.Time, region string) (bool, error) {
	date = truncateToDate(date)
	if isWeekend(date) {
		return false, nil
	}
	holidays, err := o.holidays.Holidays(ctx, date, date, region)
	if err != nil {
		return false, fmt.Errorf("load holidays: %w", err)
	}
	return len(holidays) == 0, nil
}

// nonWorkingSet returns the set of non-working date keys in [start, end].
func (o *Oracle) nonWorkingSet(ctx context.Context, start, end time.Time, region string) (map[string]struct{}, error) {
	days, err := o.NonWorkingDays(ctx, start, end, region)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[dateKey(d.Date)] = struct{}{}
	}
	return set, nil
}
