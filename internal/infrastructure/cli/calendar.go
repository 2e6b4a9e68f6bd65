package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sitecast/internal/infrastructure/config"
)

var calendarRegion string

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Working-day calendar queries and holiday management",
}

var calendarAddDaysCmd = &cobra.Command{
	Use:   "add-days <date> <n>",
	Short: "Show the date n working days after a start date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", args[0], err)
		}
		var n int
		if _, err := fmt.Sscanf(args[1], "%d", &n); err != nil {
			return fmt.Errorf("invalid working-day count %q: %w", args[1], err)
		}

		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		end, err := services.Calendar.AddWorkingDays(cmd.Context(), start, n, calendarRegion)
		if err != nil {
			return err
		}
		fmt.Println(end.Format("2006-01-02"))
		return nil
	},
}

var calendarWorkdaysCmd = &cobra.Command{
	Use:   "workdays <start> <end>",
	Short: "Count working days between two dates, inclusive",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := time.Parse("2006-01-02", args[0])
		if err != nil {
			return fmt.Errorf("invalid start date %q: %w", args[0], err)
		}
		end, err := time.Parse("2006-01-02", args[1])
		if err != nil {
			return fmt.Errorf("invalid end date %q: %w", args[1], err)
		}

		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		days, err := services.Calendar.WorkingDaysBetween(cmd.Context(), start, end, calendarRegion)
		if err != nil {
			return err
		}
		fmt.Println(days)
		return nil
	},
}

var calendarImportCmd = &cobra.Command{
	Use:   "import <holidays.json>",
	Short: "Import holidays from a JSON file",
	Long: `Import validates a JSON holiday file against a schema and writes
the holidays into the store. Cached forecasts are dropped because holiday
changes move every projected completion date.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read holiday file: %w", err)
		}
		days, err := config.ImportHolidaysJSON(data)
		if err != nil {
			return err
		}

		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		for _, d := range days {
			if err := services.Store.AddHoliday(cmd.Context(), d); err != nil {
				return err
			}
		}
		services.Cache.Purge()

		fmt.Printf("Imported %d holidays\n", len(days))
		return nil
	},
}

func init() {
	calendarCmd.PersistentFlags().StringVar(&calendarRegion, "region", "", "holiday region")
	calendarCmd.AddCommand(calendarAddDaysCmd)
	calendarCmd.AddCommand(calendarWorkdaysCmd)
	calendarCmd.AddCommand(calendarImportCmd)
	RootCmd.AddCommand(calendarCmd)
}
