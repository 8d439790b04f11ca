package plan

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/planning/application/commands"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Push the study plan to a CalDAV calendar",
	Long: `Mirror the stored plan into the CalDAV calendar configured with
CALDAV_URL, CALDAV_USERNAME and CALDAV_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.SyncCalendar == nil {
			return cli.ErrNotInitialized
		}

		report, err := app.SyncCalendar.Handle(cmd.Context(), commands.SyncCalendarCommand{})
		if err != nil {
			if errors.Is(err, commands.ErrCalendarNotConfigured) {
				return errors.New("calendar sync is not configured - set CALDAV_URL")
			}
			return fmt.Errorf("failed to sync plan: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Calendar synced")
		fmt.Fprintf(out, "  created: %d\n", report.Created)
		fmt.Fprintf(out, "  updated: %d\n", report.Updated)
		fmt.Fprintf(out, "  deleted: %d\n", report.Deleted)
		if report.Failed > 0 {
			fmt.Fprintf(out, "  failed: %d\n", report.Failed)
		}
		return nil
	},
}
