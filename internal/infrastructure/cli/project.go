package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/sitecast/pkg/domain/project"
)

var (
	projectName    string
	projectRegion  string
	projectStart   string
	projectPlanned string
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <project-id>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := &project.Project{
			ID:     args[0],
			Name:   projectName,
			Region: projectRegion,
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		if projectStart != "" {
			d, err := time.Parse("2006-01-02", projectStart)
			if err != nil {
				return fmt.Errorf("invalid start date %q: %w", projectStart, err)
			}
			p.StartDate = &d
		}
		if projectPlanned != "" {
			d, err := time.Parse("2006-01-02", projectPlanned)
			if err != nil {
				return fmt.Errorf("invalid planned completion %q: %w", projectPlanned, err)
			}
			p.PlannedCompletion = &d
		}

		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.Store.CreateProject(cmd.Context(), p); err != nil {
			return err
		}
		fmt.Printf("Created project %s\n", p.ID)
		return nil
	},
}

var projectMemberCmd = &cobra.Command{
	Use:   "add-member <project-id> <user-id>",
	Short: "Grant a user access to a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		if err := services.Store.AddMember(cmd.Context(), args[0], args[1], "member"); err != nil {
			return err
		}
		fmt.Printf("Added %s to project %s\n", args[1], args[0])
		return nil
	},
}

var projectHistoryCmd = &cobra.Command{
	Use:   "history <project-id>",
	Short: "Show the persisted forecast log, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := buildServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		forecasts, err := services.Forecast.History(cmd.Context(), args[0], 20)
		if err != nil {
			return err
		}
		if len(forecasts) == 0 {
			fmt.Println("No forecasts recorded yet.")
			return nil
		}
		for _, f := range forecasts {
			fmt.Printf("%s  completion=%s  risk=%s  confidence=%d%%\n",
				f.GeneratedAt.Format(time.RFC3339), f.EstimatedCompletion.Format("2006-01-02"), f.Risk, f.Confidence)
		}
		return nil
	},
}

func init() {
	projectCreateCmd.Flags().StringVar(&projectName, "name", "", "project name")
	projectCreateCmd.Flags().StringVar(&projectRegion, "region", "", "holiday region")
	projectCreateCmd.Flags().StringVar(&projectStart, "start", "", "start date (2006-01-02)")
	projectCreateCmd.Flags().StringVar(&projectPlanned, "planned", "", "planned completion date (2006-01-02)")
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectMemberCmd)
	projectCmd.AddCommand(projectHistoryCmd)
	RootCmd.AddCommand(projectCmd)
}
