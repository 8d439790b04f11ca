package plan

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/planning/application/queries"
	"github.com/spf13/cobra"
)

var (
	showFrom string
	showTo   string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored study plan",
	Long: `Show the stored plan grouped by day.

Examples:
  studyplanner plan show
  studyplanner plan show --from 2024-05-01 --to 2024-05-07
  studyplanner plan show --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.WeeklyPlan == nil {
			return cli.ErrNotInitialized
		}

		view, err := app.WeeklyPlan.Handle(cmd.Context(), queries.GetWeeklyPlanQuery{From: showFrom, To: showTo})
		if err != nil {
			return fmt.Errorf("failed to load plan: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, view)
		}
		if view.SlotCount == 0 {
			fmt.Fprintln(out, "No plan stored. Run 'studyplanner plan generate' first.")
			return nil
		}

		for _, day := range view.Days {
			marker := ""
			if day.Weekend {
				marker = ", weekend"
			}
			fmt.Fprintf(out, "%s (%s%s) - %s\n", day.DayName, day.Date, marker, cli.FormatHours(day.TotalHours))
			for _, slot := range day.Slots {
				fmt.Fprintf(out, "  %s  %-8s %s [%s] %s\n",
					slot.TimeSlot, slot.Category, slot.ItemName, slot.SubjectName, cli.FormatHours(slot.Hours))
			}
		}
		fmt.Fprintf(out, "\n%d slots, %s total, %s on weekends\n",
			view.SlotCount, cli.FormatHours(view.TotalHours), cli.FormatHours(view.WeekendHours))
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showFrom, "from", "", "first day to show (YYYY-MM-DD)")
	showCmd.Flags().StringVar(&showTo, "to", "", "last day to show (YYYY-MM-DD)")
}
