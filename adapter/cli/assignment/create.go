package assignment

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var (
	subject    string
	dueDate    string
	hours      float64
	difficulty string
	priority   string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new assignment",
	Long: `Create a new assignment with a due date.

Examples:
  studyplanner assignment create "Essay" --subject English --due 2024-05-10
  studyplanner assignment create "Lab report" -s Physics --due 2024-05-03 --hours 4 -p high`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Assignments == nil {
			return cli.ErrNotInitialized
		}

		created, err := app.Assignments.Create(cmd.Context(), commands.CreateAssignmentCommand{
			Name:           args[0],
			SubjectName:    subject,
			DueDate:        dueDate,
			EstimatedHours: hours,
			Difficulty:     difficulty,
			Priority:       priority,
		})
		if err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Assignment created: %s\n", created.ID())
		fmt.Fprintf(out, "  name: %s\n", created.Name())
		if created.DueDate() != "" {
			fmt.Fprintf(out, "  due: %s\n", created.DueDate())
		}
		fmt.Fprintf(out, "  estimate: %s\n", cli.FormatHours(created.EstimatedHours()))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&subject, "subject", "s", "", "subject the assignment belongs to")
	createCmd.Flags().StringVar(&dueDate, "due", "", "due date (YYYY-MM-DD)")
	createCmd.Flags().Float64Var(&hours, "hours", 0, "estimated hours (default estimate when omitted)")
	createCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "difficulty (easy, medium, hard)")
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (low, medium, high)")
}
