package cli

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sitecast/internal/infrastructure/config"
	"github.com/felixgeelhaar/sitecast/internal/infrastructure/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the calendar config and invalidate forecasts on change",
	Long: `Watch runs until interrupted. When the calendar config file changes,
the new holidays are seeded into the store and all cached forecasts are
dropped, since a calendar change moves every projected completion date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		watcher, err := watch.NewConfigWatcher(configPath, 500*time.Millisecond, func() {
			cfg, err := config.LoadCalendarConfig(configPath)
			if err != nil {
				slog.Error("reload calendar config failed", "path", configPath, "error", err)
				return
			}
			if err := cfg.SeedHolidays(cmd.Context(), services.Store); err != nil {
				slog.Error("reseed holidays failed", "error", err)
				return
			}
			services.Cache.Purge()
			slog.Info("calendar config reloaded, forecast cache purged", "path", configPath)
		})
		if err != nil {
			return err
		}

		fmt.Printf("Watching %s\n", configPath)
		return watcher.Run(cmd.Context())
	},
}

func init() {
	RootCmd.AddCommand(watchCmd)
}
