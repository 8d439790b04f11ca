package plan

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/planning/application/queries"
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/security"
	"github.com/spf13/cobra"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the study plan as iCalendar",
	Long: `Export the stored plan as an iCalendar (.ics) file.

Examples:
  studyplanner plan export > plan.ics
  studyplanner plan export --output ~/calendars/study.ics`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.ExportPlan == nil {
			return cli.ErrNotInitialized
		}

		data, err := app.ExportPlan.Handle(cmd.Context(), queries.ExportPlanQuery{})
		if err != nil {
			if errors.Is(err, domain.ErrPlanNotFound) {
				return errors.New("no plan stored - run 'studyplanner plan generate' first")
			}
			return fmt.Errorf("failed to export plan: %w", err)
		}

		if exportOutput == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		if err := security.WriteFile(exportOutput, data); err != nil {
			return fmt.Errorf("failed to write %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Plan exported to %s\n", exportOutput)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")
}
