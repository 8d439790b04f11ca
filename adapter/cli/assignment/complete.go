package assignment

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:   "complete [id]",
	Short: "Mark an assignment as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Assignments == nil {
			return cli.ErrNotInitialized
		}

		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := app.Assignments.Complete(cmd.Context(), commands.CompleteAssignmentCommand{ID: id}); err != nil {
			return fmt.Errorf("failed to complete assignment: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Assignment completed: %s\n", id)
		return nil
	},
}
