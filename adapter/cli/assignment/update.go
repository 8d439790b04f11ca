package assignment

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var (
	updateName       string
	updateSubject    string
	updateDue        string
	updateHours      float64
	updateDifficulty string
	updatePriority   string
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change an assignment",
	Long: `Change the given fields of an assignment. Fields without a flag keep their value.

Examples:
  studyplanner assignment update 3f0c... --due 2024-05-12
  studyplanner assignment update 3f0c... --hours 6 --priority high`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Assignments == nil {
			return cli.ErrNotInitialized
		}

		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		update := commands.UpdateAssignmentCommand{ID: id}
		flags := cmd.Flags()
		if flags.Changed("name") {
			update.Name = &updateName
		}
		if flags.Changed("subject") {
			update.SubjectName = &updateSubject
		}
		if flags.Changed("due") {
			update.DueDate = &updateDue
		}
		if flags.Changed("hours") {
			update.EstimatedHours = &updateHours
		}
		if flags.Changed("difficulty") {
			update.Difficulty = &updateDifficulty
		}
		if flags.Changed("priority") {
			update.Priority = &updatePriority
		}

		updated, err := app.Assignments.Update(cmd.Context(), update)
		if err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Assignment updated: %s (%s)\n", updated.Name(), updated.ID())
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "new name")
	updateCmd.Flags().StringVarP(&updateSubject, "subject", "s", "", "new subject")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "new due date (YYYY-MM-DD)")
	updateCmd.Flags().Float64Var(&updateHours, "hours", 0, "new estimated hours")
	updateCmd.Flags().StringVarP(&updateDifficulty, "difficulty", "d", "", "new difficulty")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority")
}
