package plan

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/planning/application/commands"
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/spf13/cobra"
)

var (
	hoursPerDay     float64
	startDate       string
	endDate         string
	includeSubjects bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new study plan",
	Long: `Generate a study plan and replace the stored one.

Without dates the plan starts today and runs to the latest deadline.

Examples:
  studyplanner plan generate
  studyplanner plan generate --hours 3 --start 2024-05-01 --end 2024-05-07
  studyplanner plan generate --include-subjects`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GeneratePlan == nil {
			return cli.ErrNotInitialized
		}

		flags := cmd.Flags()
		hours := app.HoursPerDay
		if flags.Changed("hours") {
			hours = hoursPerDay
		}
		subjects := app.IncludeSubjects
		if flags.Changed("include-subjects") {
			subjects = includeSubjects
		}

		result, err := app.GeneratePlan.Handle(cmd.Context(), commands.GeneratePlanCommand{
			HoursPerDay:     hours,
			StartDate:       startDate,
			EndDate:         endDate,
			IncludeSubjects: subjects,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNoItems) {
				return errors.New("nothing to plan - add an assignment or exam first")
			}
			return fmt.Errorf("failed to generate plan: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, map[string]any{
				"plan_id":    result.PlanID,
				"start_date": result.StartDate,
				"end_date":   result.EndDate,
				"slots":      result.Plan.SlotCount(),
				"rules":      result.Plan.RulesTriggered,
			})
		}

		fmt.Fprintf(out, "Plan generated: %s to %s\n", result.StartDate, result.EndDate)
		fmt.Fprintf(out, "  slots: %d\n", result.Plan.SlotCount())
		fmt.Fprintf(out, "  needed: %s of %s available\n",
			cli.FormatHours(result.Plan.TotalHoursNeeded), cli.FormatHours(result.Plan.TotalAvailableHours))
		if result.Plan.Compressed() {
			fmt.Fprintln(out, "  warning: not enough time, hours were scaled down")
		}
		if cli.Verbose() {
			for _, rule := range result.Plan.RulesTriggered {
				fmt.Fprintf(out, "  rule: %s\n", rule)
			}
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().Float64Var(&hoursPerDay, "hours", 0, "study hours available per day")
	generateCmd.Flags().StringVar(&startDate, "start", "", "first day of the plan (YYYY-MM-DD)")
	generateCmd.Flags().StringVar(&endDate, "end", "", "last day of the plan (YYYY-MM-DD)")
	generateCmd.Flags().BoolVar(&includeSubjects, "include-subjects", false, "also schedule study time for subjects")
}
