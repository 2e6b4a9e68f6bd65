// Package cli implements the sitecast command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sitecast/internal/infrastructure/wiring"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var (
	dbPath     string
	configPath string
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "sitecast",
	Version: Version,
	Short:   "Completion forecasting for construction projects",
	Long: `Sitecast predicts when a construction project will finish.
It computes the critical path through the task-dependency graph, adjusts
remaining durations by observed velocity, and walks a working-day calendar
that skips weekends and regional holidays.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", ".sitecast/sitecast.db", "path to the project database")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", ".sitecast/sitecast.yaml", "path to the calendar config")
}

// buildServices wires the service graph for the configured paths.
func buildServices(ctx context.Context) (*wiring.AppServices, error) {
	return wiring.BuildAppServices(ctx, dbPath, configPath)
}
