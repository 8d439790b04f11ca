package subject

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a subject",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Subjects == nil {
			return cli.ErrNotInitialized
		}

		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := app.Subjects.Delete(cmd.Context(), commands.DeleteSubjectCommand{ID: id}); err != nil {
			return fmt.Errorf("failed to delete subject: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Subject deleted: %s\n", id)
		return nil
	},
}
