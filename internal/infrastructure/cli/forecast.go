package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sitecast/pkg/domain/forecast"
)

var (
	forecastUser string
	forecastJSON bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast <project-id>",
	Short: "Predict project completion from the critical path and velocity",
	Long: `Forecast computes the projected completion date for a project.

The critical path is derived from the task-dependency graph, remaining
durations are adjusted by recent velocity, and the date walk skips weekends
and regional holidays. Results are cached for an hour and invalidated by
task, dependency, and progress mutations.`,
	Args: cobra.ExactArgs(1),
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().StringVar(&forecastUser, "user", "", "requesting user ID (required)")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "output in JSON format")
	_ = forecastCmd.MarkFlagRequired("user")
	RootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	services, err := buildServices(cmd.Context())
	if err != nil {
		return err
	}
	defer services.Close()

	f, err := services.Forecast.GenerateForecast(cmd.Context(), args[0], forecastUser)
	if err != nil {
		return fmt.Errorf("generate forecast: %w", err)
	}

	if forecastJSON {
		return outputForecastJSON(f)
	}
	return outputForecastText(f)
}

func outputForecastText(f *forecast.Forecast) error {
	fmt.Println("Project Forecast")
	fmt.Println("----------------")
	fmt.Printf("Project:              %s\n", f.ProjectID)
	fmt.Printf("Estimated Completion: %s\n", f.EstimatedCompletion.Format("2006-01-02"))
	fmt.Printf("Risk Level:           %s\n", f.Risk)
	fmt.Printf("Confidence:           %d%%\n", f.Confidence)
	fmt.Printf("Working Days:         %d\n", f.WorkingDays)

	if len(f.CriticalPath) > 0 {
		fmt.Println("\nCritical Path:")
		for i, id := range f.CriticalPath {
			fmt.Printf("  %d. %s\n", i+1, id)
		}
	}

	fmt.Printf("\n%s\n", f.Explanation)
	return nil
}

func outputForecastJSON(f *forecast.Forecast) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}
