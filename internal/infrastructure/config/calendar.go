// Package config loads and saves the sitecast calendar configuration.
package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
)

// HolidayConfig is a single configured holiday.
type HolidayConfig struct {
	Date string `yaml:"date" json:"date"` // 2006-01-02
	Name string `yaml:"name" json:"name"`
}

// RegionConfig groups holidays for one region.
type RegionConfig struct {
	Name     string          `yaml:"name" json:"name"`
	Holidays []HolidayConfig `yaml:"holidays" json:"holidays"`
}

// CalendarConfig is the serialized representation of sitecast.yaml.
type CalendarConfig struct {
	// DefaultRegion is used when a project has no region of its own.
	DefaultRegion string `yaml:"default_region"`
	// CacheTTLSeconds bounds forecast cache freshness. Zero means the
	// built-in default of one hour.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	// Regions lists per-region holiday calendars.
	Regions []RegionConfig `yaml:"regions"`
}

// TTL returns the configured cache TTL.
func (c *CalendarConfig) TTL() time.Duration {
	if c == nil || c.CacheTTLSeconds <= 0 {
		return time.Hour
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// LoadCalendarConfig reads the config file. A missing file yields an empty
// config rather than an error.
func LoadCalendarConfig(path string) (*CalendarConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &CalendarConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read calendar config: %w", err)
	}

	var cfg CalendarConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar config: %w", err)
	}
	return &cfg, nil
}

// SaveCalendarConfig writes the config file.
func SaveCalendarConfig(path string, cfg *CalendarConfig) error {
	if cfg == nil {
		return fmt.Errorf("calendar config is nil")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal calendar config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// HolidayWriter is the slice of the store the config seeder needs.
type HolidayWriter interface {
	AddHoliday(ctx context.Context, h calendar.NonWorkingDay) error
}

// SeedHolidays writes every configured holiday into the store. Existing
// (region, date, name) rows are left untouched.
func (c *CalendarConfig) SeedHolidays(ctx context.Context, store HolidayWriter) error {
	for _, region := range c.Regions {
		for _, h := range region.Holidays {
			date, err := time.Parse("2006-01-02", h.Date)
			if err != nil {
				return fmt.Errorf("region %s: invalid holiday date %q: %w", region.Name, h.Date, err)
			}
			day := calendar.NonWorkingDay{
				Date:        date,
				Reason:      calendar.ReasonHoliday,
				HolidayName: h.Name,
				Region:      region.Name,
			}
			if err := store.AddHoliday(ctx, day); err != nil {
				return fmt.Errorf("seed holiday %s/%s: %w", region.Name, h.Date, err)
			}
		}
	}
	return nil
}
