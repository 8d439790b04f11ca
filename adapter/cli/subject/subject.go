package subject

import (
	"github.com/spf13/cobra"
)

// Cmd is the subject command group
var Cmd = &cobra.Command{
	Use:     "subject",
	Aliases: []string{"subjects"},
	Short:   "Manage subjects",
	Long: `Create, list, and delete subjects.

A subject without explicit hours gets a recommendation from the study-hours model.`,
}

func init() {
	Cmd.AddCommand(createCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(deleteCmd)
}
