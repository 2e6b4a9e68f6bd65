package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var invalidateCmd = &cobra.Command{
	Use:   "invalidate <project-id>",
	Short: "Drop the cached forecast for a project",
	Long: `Invalidate forces the next forecast request to recompute.
The CRUD layer calls this after every task, dependency, or progress
mutation; the command exists for manual cache busting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		services.Forecast.InvalidateForecast(cmd.Context(), args[0])
		fmt.Printf("Forecast cache invalidated for project %s\n", args[0])
		return nil
	},
}

func init() {
	RootCmd.AddCommand(invalidateCmd)
}
