package notification

import (
	"fmt"
	"sort"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/commands"
	"github.com/spf13/cobra"
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Check for clashing deadlines",
	Long:  `Look for deadlines that fall too close together and record a notification for each new clash.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.DetectClashes == nil {
			return cli.ErrNotInitialized
		}

		result, err := app.DetectClashes.Handle(cmd.Context(), commands.DetectClashesCommand{})
		if err != nil {
			return fmt.Errorf("failed to detect clashes: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d clashes found, %d new notifications\n", result.ClashesFound, len(result.Created))
		for _, n := range result.Created {
			fmt.Fprintf(out, "  %s\n", n.Message())
		}
		return nil
	},
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Create reminders for upcoming deadlines",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.GenerateReminders == nil {
			return cli.ErrNotInitialized
		}

		created, err := app.GenerateReminders.Handle(cmd.Context(), commands.GenerateRemindersCommand{})
		if err != nil {
			return fmt.Errorf("failed to generate reminders: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d new reminders\n", len(created))
		for _, n := range created {
			fmt.Fprintf(out, "  %s\n", n.Message())
		}
		return nil
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize current clashes without recording them",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.NotificationViews == nil {
			return cli.ErrNotInitialized
		}

		summary, err := app.NotificationViews.ClashSummary(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to summarize clashes: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, summary)
		}

		fmt.Fprintf(out, "%d clashes\n", summary.Total)
		printCounts(cmd, "by kind", summary.ByKind)
		printCounts(cmd, "by severity", summary.BySeverity)
		return nil
	},
}

func printCounts(cmd *cobra.Command, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(out, "    %s: %d\n", k, counts[k])
	}
}
