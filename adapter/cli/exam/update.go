package exam

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var (
	updateName       string
	updateSubject    string
	updateDate       string
	updateDifficulty string
	updatePastScore  float64
	updateChapters   int
	updateHours      float64
	updatePriority   string
)

var updateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change an exam",
	Long:  `Change the given fields of an exam. Fields without a flag keep their value.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Exams == nil {
			return cli.ErrNotInitialized
		}

		id, err := cli.ParseID(args[0])
		if err != nil {
			return err
		}

		update := commands.UpdateExamCommand{ID: id}
		flags := cmd.Flags()
		if flags.Changed("name") {
			update.Name = &updateName
		}
		if flags.Changed("subject") {
			update.SubjectName = &updateSubject
		}
		if flags.Changed("date") {
			update.ExamDate = &updateDate
		}
		if flags.Changed("difficulty") {
			update.Difficulty = &updateDifficulty
		}
		if flags.Changed("past-score") {
			update.PastScore = &updatePastScore
		}
		if flags.Changed("chapters") {
			update.Chapters = &updateChapters
		}
		if flags.Changed("hours") {
			update.RecommendedHours = &updateHours
		}
		if flags.Changed("priority") {
			update.Priority = &updatePriority
		}

		updated, err := app.Exams.Update(cmd.Context(), update)
		if err != nil {
			return fmt.Errorf("failed to update exam: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exam updated: %s (%s)\n", updated.Name(), updated.ID())
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateName, "name", "", "new name")
	updateCmd.Flags().StringVarP(&updateSubject, "subject", "s", "", "new subject")
	updateCmd.Flags().StringVar(&updateDate, "date", "", "new exam date (YYYY-MM-DD)")
	updateCmd.Flags().StringVarP(&updateDifficulty, "difficulty", "d", "", "new difficulty")
	updateCmd.Flags().Float64Var(&updatePastScore, "past-score", 0, "new past score")
	updateCmd.Flags().IntVar(&updateChapters, "chapters", 0, "new chapter count")
	updateCmd.Flags().Float64Var(&updateHours, "hours", 0, "new recommended hours")
	updateCmd.Flags().StringVarP(&updatePriority, "priority", "p", "", "new priority")
}
