package calendar

import (
	"context"
	"errors"
	"testing"
	"time"
)

// stubHolidays serves a fixed holiday list and counts queries.
type stubHolidays struct {
	holidays []NonWorkingDay
	calls    int
}

func (s *stubHolidays) Holidays(_ context.Context, start, end time.Time, region string) ([]NonWorkingDay, error) {
	s.calls++
	var out []NonWorkingDay
	for _, h := range s.holidays {
		if h.Region != "" && h.Region != region {
			continue
		}
		if h.Date.Before(start) || h.Date.After(end) {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

type failingHolidays struct{}

func (failingHolidays) Holidays(context.Context, time.Time, time.Time, string) ([]NonWorkingDay, error) {
	return nil, errors.New("holiday store down")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// 2026-03-06 is a Friday.
var friday = date(2026, time.March, 6)

func holiday(y int, m time.Month, d int, region, name string) NonWorkingDay {
	return NonWorkingDay{Date: date(y, m, d), Reason: ReasonHoliday, HolidayName: name, Region: region}
}

func TestAddWorkingDays_SkipsWeekend(t *testing.T) {
	oracle := NewOracle(&stubHolidays{})

	got, err := oracle.AddWorkingDays(context.Background(), friday, 1, "")
	if err != nil {
		t.Fatalf("AddWorkingDays failed: %v", err)
	}
	if want := date(2026, time.March, 9); !got.Equal(want) {
		t.Fatalf("expected Monday %s, got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

func TestAddWorkingDays_Zero(t *testing.T) {
	oracle := NewOracle(&stubHolidays{})

	got, err := oracle.AddWorkingDays(context.Background(), friday, 0, "")
	if err != nil {
		t.Fatalf("AddWorkingDays failed: %v", err)
	}
	if !got.Equal(friday) {
		t.Fatalf("expected start date unchanged, got %s", got.Format("2006-01-02"))
	}
}

func TestAddWorkingDays_Negative(t *testing.T) {
	oracle := NewOracle(&stubHolidays{})

	if _, err := oracle.AddWorkingDays(context.Background(), friday, -1, ""); !errors.Is(err, ErrNegativeWorkingDays) {
		t.Fatalf("expected ErrNegativeWorkingDays, got %v", err)
	}
}

func TestAddWorkingDays_SkipsRegionalHoliday(t *testing.T) {
	stub := &stubHolidays{holidays: []NonWorkingDay{
		holiday(2026, time.March, 9, "de", "Rosenmontag"),
	}}
	oracle := NewOracle(stub)

	got, err := oracle.AddWorkingDays(context.Background(), friday, 1, "de")
	if err != nil {
		t.Fatalf("AddWorkingDays failed: %v", err)
	}
	if want := date(2026, time.March, 10); !got.Equal(want) {
		t.Fatalf("expected Tuesday %s, got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}

	// Same request outside the region lands on the holiday.
	got, err = oracle.AddWorkingDays(context.Background(), friday, 1, "us")
	if err != nil {
		t.Fatalf("AddWorkingDays failed: %v", err)
	}
	if want := date(2026, time.March, 9); !got.Equal(want) {
		t.Fatalf("expected Monday %s, got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

func TestAddWorkingDays_ExtendsWindowOnDenseHolidays(t *testing.T) {
	// The 1.4x buffer covers only two calendar days for n=1; three
	// consecutive holidays push the result past the initial window.
	stub := &stubHolidays{holidays: []NonWorkingDay{
		holiday(2026, time.March, 9, "de", "h1"),
		holiday(2026, time.March, 10, "de", "h2"),
		holiday(2026, time.March, 11, "de", "h3"),
	}}
	oracle := NewOracle(stub)

	got, err := oracle.AddWorkingDays(context.Background(), friday, 1, "de")
	if err != nil {
		t.Fatalf("AddWorkingDays failed: %v", err)
	}
	if want := date(2026, time.March, 12); !got.Equal(want) {
		t.Fatalf("expected Thursday %s, got %s", want.Format("2006-01-02"), got.Format("2006-01-02"))
	}
}

func TestAddWorkingDays_NeverLandsOnNonWorkingDay(t *testing.T) {
	stub := &stubHolidays{holidays: []NonWorkingDay{
		holiday(2026, time.March, 10, "de", "h1"),
		holiday(2026, time.March, 17, "de", "h2"),
	}}
	oracle := NewOracle(stub)

	cursor := friday
	for n := 1; n <= 15; n++ {
		got, err := oracle.AddWorkingDays(context.Background(), friday, n, "de")
		if err != nil {
			t.Fatalf("AddWorkingDays(%d) failed: %v", n, err)
		}
		if wd := got.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Fatalf("AddWorkingDays(%d) landed on %s", n, wd)
		}
		for _, h := range stub.holidays {
			if got.Equal(h.Date) {
				t.Fatalf("AddWorkingDays(%d) landed on holiday %s", n, h.HolidayName)
			}
		}
		if !got.After(cursor) {
			t.Fatalf("AddWorkingDays(%d) did not advance: %s", n, got.Format("2006-01-02"))
		}
		cursor = got
	}
}

func TestWorkingDaysBetween(t *testing.T) {
	stub := &stubHolidays{holidays: []NonWorkingDay{
		holiday(2026, time.March, 9, "de", "Rosenmontag"),
	}}
	oracle := NewOracle(stub)

	tests := []struct {
		name   string
		start  time.Time
		end    time.Time
		region string
		want   int
	}{
		{name: "same working day", start: friday, end: friday, want: 1},
		{name: "same weekend day", start: date(2026, time.March, 7), end: date(2026, time.March, 7), want: 0},
		{name: "friday to monday", start: friday, end: date(2026, time.March, 9), want: 2},
		{name: "friday to monday with holiday", start: friday, end: date(2026, time.March, 9), region: "de", want: 1},
		{name: "full week", start: date(2026, time.March, 9), end: date(2026, time.March, 13), want: 5},
		{name: "inverted range floors at zero", start: date(2026, time.March, 9), end: friday, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oracle.WorkingDaysBetween(context.Background(), tt.start, tt.end, tt.region)
			if err != nil {
				t.Fatalf("WorkingDaysBetween failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %d working days, got %d", tt.want, got)
			}
		})
	}
}

func TestNonWorkingDays_ClassifiesWeekendsAndHolidays(t *testing.T) {
	stub := &stubHolidays{holidays: []NonWorkingDay{
		holiday(2026, time.March, 9, "de", "Rosenmontag"),
		holiday(2026, time.March, 7, "de", "SaturdayFest"),
	}}
	oracle := NewOracle(stub)

	days, err := oracle.NonWorkingDays(context.Background(), friday, date(2026, time.March, 10), "de")
	if err != nil {
		t.Fatalf("NonWorkingDays failed: %v", err)
	}

	// Saturday, Sunday, holiday Monday. The Saturday holiday is reported
	// once, as a weekend.
	if len(days) != 3 {
		t.Fatalf("expected 3 non-working days, got %d: %v", len(days), days)
	}
	if days[0].Reason != ReasonWeekend || days[1].Reason != ReasonWeekend {
		t.Fatalf("expected weekend classification, got %v", days[:2])
	}
	if days[2].Reason != ReasonHoliday || days[2].HolidayName != "Rosenmontag" {
		t.Fatalf("expected Rosenmontag holiday, got %+v", days[2])
	}
}

func TestNonWorkingDays_SingleBulkFetch(t *testing.T) {
	stub := &stubHolidays{}
	oracle := NewOracle(stub)

	if _, err := oracle.AddWorkingDays(context.Background(), friday, 10, ""); err != nil {
		t.Fatalf("AddWorkingDays failed: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected a single bulk holiday fetch, got %d", stub.calls)
	}
}

func TestOracle_PropagatesHolidaySourceErrors(t *testing.T) {
	oracle := NewOracle(failingHolidays{})

	if _, err := oracle.AddWorkingDays(context.Background(), friday, 3, ""); err == nil {
		t.Fatal("expected error from failing holiday source")
	}
	if _, err := oracle.WorkingDaysBetween(context.Background(), friday, friday.AddDate(0, 0, 5), ""); err == nil {
		t.Fatal("expected error from failing holiday source")
	}
}

func TestIsWorkingDay(t *testing.T) {
	stub := &stubHolidays{holidays: []NonWorkingDay{
		holiday(2026, time.March, 9, "de", "Rosenmontag"),
	}}
	oracle := NewOracle(stub)

	tests := []struct {
		name   string
		day    time.Time
		region string
		want   bool
	}{
		{name: "weekday", day: friday, want: true},
		{name: "saturday", day: date(2026, time.March, 7), want: false},
		{name: "regional holiday", day: date(2026, time.March, 9), region: "de", want: false},
		{name: "holiday elsewhere", day: date(2026, time.March, 9), region: "us", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := oracle.IsWorkingDay(context.Background(), tt.day, tt.region)
			if err != nil {
				t.Fatalf("IsWorkingDay failed: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
