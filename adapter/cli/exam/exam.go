package exam

import (
	"github.com/spf13/cobra"
)

// Cmd is the exam command group
var Cmd = &cobra.Command{
	Use:     "exam",
	Aliases: []string{"exams"},
	Short:   "Manage exams",
	Long:    `Create, list, update, and delete exams.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(updateCmd)
	Cmd.AddCommand(deleteCmd)
}
