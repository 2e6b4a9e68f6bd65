// Package wiring assembles the storage, calendar, cache, and application
// services for a sitecast installation.
package wiring

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/sitecast/internal/infrastructure/config"
	"github.com/felixgeelhaar/sitecast/pkg/application"
	"github.com/felixgeelhaar/sitecast/pkg/domain/calendar"
	"github.com/felixgeelhaar/sitecast/pkg/storage"
)

// AppServices exposes the wired application services.
type AppServices struct {
	Store    *storage.SQLiteStore
	Cache    *storage.MemoryCache
	Calendar *calendar.Oracle
	Forecast *application.ForecastService
	Config   *config.CalendarConfig
}

// BuildAppServices constructs the service graph for a database path and
// calendar config path. Configured holidays are seeded into the store so the
// calendar oracle sees them on its next query.
func BuildAppServices(ctx context.Context, dbPath, configPath string) (*AppServices, error) {
	store, err := storage.NewSQLiteStore(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	cfg, err := config.LoadCalendarConfig(configPath)
	if err != nil {
		store.Close()
		return nil, err
	}
	if err := cfg.SeedHolidays(ctx, store); err != nil {
		store.Close()
		return nil, err
	}

	oracle := calendar.NewOracle(store)
	cache := storage.NewMemoryCache()

	forecastSvc := application.NewForecastService(
		store,
		storage.NewBreakerCache(cache),
		oracle,
		application.WithTTL(cfg.TTL()),
	)

	return &AppServices{
		Store:    store,
		Cache:    cache,
		Calendar: oracle,
		Forecast: forecastSvc,
		Config:   cfg,
	}, nil
}

// Close releases the underlying resources.
func (s *AppServices) Close() error {
	return s.Store.Close()
}
