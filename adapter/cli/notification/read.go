package notification

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/application/commands"
	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Mark a notification as read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Notifications == nil {
			return cli.ErrNotInitialized
		}

		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := app.Notifications.MarkRead(cmd.Context(), commands.MarkReadCommand{ID: id}); err != nil {
			return fmt.Errorf("failed to mark notification read: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Notification read: %s\n", id)
		return nil
	},
}

var readAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification as read",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Notifications == nil {
			return cli.ErrNotInitialized
		}

		n, err := app.Notifications.MarkAllRead(cmd.Context(), commands.MarkAllReadCommand{})
		if err != nil {
			return fmt.Errorf("failed to mark notifications read: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%d notifications marked read\n", n)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a notification",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Notifications == nil {
			return cli.ErrNotInitialized
		}

		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := app.Notifications.Delete(cmd.Context(), commands.DeleteCommand{ID: id}); err != nil {
			return fmt.Errorf("failed to delete notification: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Notification deleted: %s\n", id)
		return nil
	},
}
