package plan

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored study plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ClearPlan == nil {
			return cli.ErrNotInitialized
		}

		result, err := app.ClearPlan.Handle(cmd.Context(), commands.ClearPlanCommand{})
		if err != nil {
			return fmt.Errorf("failed to clear plan: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Plan cleared: %d slots removed\n", result.SlotsRemoved)
		return nil
	},
}
