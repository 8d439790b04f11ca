package exam

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an exam",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Exams == nil {
			return cli.ErrNotInitialized
		}

		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}
		if err := app.Exams.Delete(cmd.Context(), commands.DeleteExamCommand{ID: id}); err != nil {
			return fmt.Errorf("failed to delete exam: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exam deleted: %s\n", id)
		return nil
	},
}
