package assignment

import (
	"github.com/spf13/cobra"
)

// Cmd is the assignment command group
var Cmd = &cobra.Command{
	Use:     "assignment",
	Aliases: []string{"assignments"},
	Short:   "Manage assignments",
	Long:    `Create, list, update, complete, and delete assignments.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(deleteCmd)
}
