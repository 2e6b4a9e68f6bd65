package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sitecast/pkg/domain/schedule"
)

var (
	taskName     string
	taskDuration int
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks, dependencies, and progress",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <project-id> <task-id>",
	Short: "Add a task to a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		t := schedule.Task{ID: args[1], Name: taskName, DurationDays: taskDuration}
		if t.Name == "" {
			t.Name = t.ID
		}
		if err := services.Store.SaveTask(cmd.Context(), args[0], t); err != nil {
			return err
		}
		services.Forecast.InvalidateForecast(cmd.Context(), args[0])
		fmt.Printf("Added task %s (%d working days)\n", t.ID, t.DurationDays)
		return nil
	},
}

var taskDependCmd = &cobra.Command{
	Use:   "depend <project-id> <task-id> <depends-on-id>",
	Short: "Record that a task depends on another",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.Store.AddDependency(cmd.Context(), args[0], args[1], args[2]); err != nil {
			return err
		}
		services.Forecast.InvalidateForecast(cmd.Context(), args[0])
		fmt.Printf("Task %s now depends on %s\n", args[1], args[2])
		return nil
	},
}

var taskProgressCmd = &cobra.Command{
	Use:   "progress <project-id> <task-id> <percent>",
	Short: "Record a progress update",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		percent, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("invalid progress %q: %w", args[2], err)
		}

		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.Store.RecordProgress(cmd.Context(), args[0], args[1], percent, time.Now()); err != nil {
			return err
		}
		services.Forecast.InvalidateForecast(cmd.Context(), args[0])
		fmt.Printf("Task %s progress recorded: %d%%\n", args[1], percent)
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVar(&taskName, "name", "", "task name")
	taskAddCmd.Flags().IntVar(&taskDuration, "days", 1, "estimated duration in working days")
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskDependCmd)
	taskCmd.AddCommand(taskProgressCmd)
	RootCmd.AddCommand(taskCmd)
}
