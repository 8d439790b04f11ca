package subject

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var (
	difficulty    string
	examDate      string
	pastScore     float64
	chapters      int
	hasAssignment bool
	hasExam       bool
	lastWeekHours float64
	hours         float64
	priority      string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new subject",
	Long: `Create a new subject.

Examples:
  studyplanner subject create Math --difficulty hard --exam-date 2024-05-06 --chapters 8
  studyplanner subject create History --hours 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Subjects == nil {
			return cli.ErrNotInitialized
		}

		flags := cmd.Flags()
		create := commands.CreateSubjectCommand{
			Name:          args[0],
			Difficulty:    difficulty,
			ExamDate:      examDate,
			Chapters:      chapters,
			HasAssignment: hasAssignment,
			HasExam:       hasExam,
			Priority:      priority,
		}
		if flags.Changed("past-score") {
			create.PastScore = &pastScore
		}
		if flags.Changed("last-week-hours") {
			create.LastWeekHours = &lastWeekHours
		}
		if flags.Changed("hours") {
			create.RecommendedHours = &hours
		}

		created, err := app.Subjects.Create(cmd.Context(), create)
		if err != nil {
			return fmt.Errorf("failed to create subject: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Subject created: %s\n", created.ID())
		fmt.Fprintf(out, "  name: %s\n", created.Name())
		fmt.Fprintf(out, "  recommended: %s\n", cli.FormatHours(created.RecommendedHours()))
		fmt.Fprintf(out, "  priority: %s\n", created.Priority())
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "difficulty (easy, medium, hard)")
	createCmd.Flags().StringVar(&examDate, "exam-date", "", "next exam date (YYYY-MM-DD)")
	createCmd.Flags().Float64Var(&pastScore, "past-score", 0, "score from the last exam (0-100)")
	createCmd.Flags().IntVar(&chapters, "chapters", 0, "number of chapters")
	createCmd.Flags().BoolVar(&hasAssignment, "has-assignment", false, "the subject has an open assignment")
	createCmd.Flags().BoolVar(&hasExam, "has-exam", false, "the subject has an upcoming exam")
	createCmd.Flags().Float64Var(&lastWeekHours, "last-week-hours", 0, "hours studied last week")
	createCmd.Flags().Float64Var(&hours, "hours", 0, "recommended hours (estimated when omitted)")
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (low, medium, high)")
}
