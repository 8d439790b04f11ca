package notification

import (
	"github.com/spf13/cobra"
)

// Cmd is the notification command group
var Cmd = &cobra.Command{
	Use:     "notification",
	Aliases: []string{"notifications", "notify"},
	Short:   "Deadline clashes and reminders",
	Long:    `List, read, and delete notifications, and check for clashes and upcoming deadlines.`,
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(readCmd)
	Cmd.AddCommand(readAllCmd)
	Cmd.AddCommand(deleteCmd)
	Cmd.AddCommand(detectCmd)
	Cmd.AddCommand(remindCmd)
	Cmd.AddCommand(summaryCmd)
}
