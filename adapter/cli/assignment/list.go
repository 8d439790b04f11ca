package assignment

import (
	"fmt"
	"text/tabwriter"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/queries"
	"github.com/spf13/cobra"
)

var pendingOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List assignments",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Coursework == nil {
			return cli.ErrNotInitialized
		}

		views, err := app.Coursework.ListAssignments(cmd.Context(), queries.ListAssignmentsQuery{PendingOnly: pendingOnly})
		if err != nil {
			return fmt.Errorf("failed to list assignments: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, views)
		}
		if len(views) == 0 {
			fmt.Fprintln(out, "No assignments found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSUBJECT\tDUE\tHOURS\tPRIORITY\tSTATUS")
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				v.ID, v.Name, v.SubjectName, v.DueDate, cli.FormatHours(v.EstimatedHours), v.Priority, v.Status)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().BoolVar(&pendingOnly, "pending", false, "only show pending assignments")
}
