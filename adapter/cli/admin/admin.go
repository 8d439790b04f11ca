package admin

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	internalApp "github.com/felixgeelhaar/studyplanner/internal/app"
	"github.com/spf13/cobra"
)

// Cmd is the admin command group
var Cmd = &cobra.Command{
	Use:   "admin",
	Short: "Maintenance commands",
}

var confirmed bool

var clearAllCmd = &cobra.Command{
	Use:   "clear-all",
	Short: "Delete all coursework, plans and notifications",
	Long: `Delete every assignment, exam, subject, plan slot and notification.

This cannot be undone and requires --yes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ClearAll == nil {
			return cli.ErrNotInitialized
		}
		if !confirmed {
			return errors.New("refusing to delete everything without --yes")
		}

		result, err := app.ClearAll.Handle(cmd.Context(), internalApp.ClearAllCommand{})
		if err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, result)
		}
		fmt.Fprintln(out, "All data cleared")
		fmt.Fprintf(out, "  assignments: %d\n", result.Assignments)
		fmt.Fprintf(out, "  exams: %d\n", result.Exams)
		fmt.Fprintf(out, "  subjects: %d\n", result.Subjects)
		fmt.Fprintf(out, "  plan slots: %d\n", result.PlanSlots)
		fmt.Fprintf(out, "  notifications: %d\n", result.Notifications)
		return nil
	},
}

func init() {
	clearAllCmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the deletion")
	Cmd.AddCommand(clearAllCmd)
}
