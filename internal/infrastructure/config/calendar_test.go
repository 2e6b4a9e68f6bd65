package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
)

func TestCalendarConfig_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitecast.yaml")

	cfg := &CalendarConfig{
		DefaultRegion:   "de",
		CacheTTLSeconds: 600,
		Regions: []RegionConfig{
			{
				Name: "de",
				Holidays: []HolidayConfig{
					{Date: "2026-05-01", Name: "Labour Day"},
					{Date: "2026-05-14", Name: "Ascension"},
				},
			},
		},
	}

	if err := SaveCalendarConfig(path, cfg); err != nil {
		t.Fatalf("SaveCalendarConfig failed: %v", err)
	}

	loaded, err := LoadCalendarConfig(path)
	if err != nil {
		t.Fatalf("LoadCalendarConfig failed: %v", err)
	}

	if loaded.DefaultRegion != "de" || loaded.CacheTTLSeconds != 600 {
		t.Fatalf("unexpected config: %+v", loaded)
	}
	if len(loaded.Regions) != 1 || len(loaded.Regions[0].Holidays) != 2 {
		t.Fatalf("regions did not round-trip: %+v", loaded.Regions)
	}
	if loaded.Regions[0].Holidays[1].Name != "Ascension" {
		t.Fatalf("unexpected holiday: %+v", loaded.Regions[0].Holidays[1])
	}
}

func TestLoadCalendarConfig_MissingFile(t *testing.T) {
	cfg, err := LoadCalendarConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("expected empty config for missing file, got %v", err)
	}
	if cfg.DefaultRegion != "" || len(cfg.Regions) != 0 {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestSaveCalendarConfig_NilConfig(t *testing.T) {
	if err := SaveCalendarConfig(filepath.Join(t.TempDir(), "out.yaml"), nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestCalendarConfig_TTL(t *testing.T) {
	tests := []struct {
		name string
		cfg  *CalendarConfig
		want time.Duration
	}{
		{name: "nil config", cfg: nil, want: time.Hour},
		{name: "zero seconds", cfg: &CalendarConfig{}, want: time.Hour},
		{name: "negative seconds", cfg: &CalendarConfig{CacheTTLSeconds: -5}, want: time.Hour},
		{name: "configured", cfg: &CalendarConfig{CacheTTLSeconds: 900}, want: 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.TTL(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

type recordingWriter struct {
	added []calendar.NonWorkingDay
}

func (w *recordingWriter) AddHoliday(_ context.Context, h calendar.NonWorkingDay) error {
	w.added = append(w.added, h)
	return nil
}

func TestSeedHolidays(t *testing.T) {
	cfg := &CalendarConfig{
		Regions: []RegionConfig{
			{Name: "de", Holidays: []HolidayConfig{{Date: "2026-05-01", Name: "Labour Day"}}},
			{Name: "us", Holidays: []HolidayConfig{{Date: "2026-07-04", Name: "Independence Day"}}},
		},
	}

	writer := &recordingWriter{}
	if err := cfg.SeedHolidays(context.Background(), writer); err != nil {
		t.Fatalf("SeedHolidays failed: %v", err)
	}

	if len(writer.added) != 2 {
		t.Fatalf("expected 2 holidays seeded, got %d", len(writer.added))
	}
	if writer.added[0].Region != "de" || writer.added[0].HolidayName != "Labour Day" {
		t.Fatalf("unexpected holiday: %+v", writer.added[0])
	}
	if writer.added[1].Reason != calendar.ReasonHoliday {
		t.Fatalf("expected holiday reason, got %+v", writer.added[1])
	}
}

func TestSeedHolidays_InvalidDate(t *testing.T) {
	cfg := &CalendarConfig{
		Regions: []RegionConfig{
			{Name: "de", Holidays: []HolidayConfig{{Date: "01.05.2026", Name: "Labour Day"}}},
		},
	}

	if err := cfg.SeedHolidays(context.Background(), &recordingWriter{}); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
