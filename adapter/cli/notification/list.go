package notification

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/queries"
	"github.com/spf13/cobra"
)

var unreadOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.NotificationViews == nil {
			return cli.ErrNotInitialized
		}

		ctx := cmd.Context()
		views, err := app.NotificationViews.List(ctx, queries.ListNotificationsQuery{UnreadOnly: unreadOnly})
		if err != nil {
			return fmt.Errorf("failed to list notifications: %w", err)
		}

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, views)
		}
		if len(views) == 0 {
			fmt.Fprintln(out, "No notifications.")
			return nil
		}

		for _, v := range views {
			marker := " "
			if !v.IsRead {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %s  %s\n", marker, v.ID, v.Title)
			fmt.Fprintf(out, "    %s\n", v.Message)
		}

		unread, err := app.NotificationViews.UnreadCount(ctx)
		if err != nil {
			return fmt.Errorf("failed to count unread notifications: %w", err)
		}
		fmt.Fprintf(out, "\n%d unread\n", unread)
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&unreadOnly, "unread", false, "only show unread notifications")
}
