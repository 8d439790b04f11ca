package assignment

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an assignment",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Assignments == nil {
			return cli.ErrNotInitialized
		}

		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := app.Assignments.Delete(cmd.Context(), commands.DeleteAssignmentCommand{ID: id}); err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Assignment deleted: %s\n", id)
		return nil
	},
}
