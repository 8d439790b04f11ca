package exam

import (
	"fmt"
	"text/tabwriter"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List exams",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Coursework == nil {
			return cli.ErrNotInitialized
		}

		views, err := app.Coursework.ListExams(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list exams: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, views)
		}
		if len(views) == 0 {
			fmt.Fprintln(out, "No exams found.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSUBJECT\tDATE\tHOURS\tPRIORITY")
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				v.ID, v.Name, v.SubjectName, v.ExamDate, cli.FormatHours(v.RecommendedHours), v.Priority)
		}
		return w.Flush()
	},
}
