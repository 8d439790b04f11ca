package exam

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/spf13/cobra"
)

var (
	subject    string
	examDate   string
	difficulty string
	pastScore  float64
	chapters   int
	hours      float64
	priority   string
)

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new exam",
	Long: `Create a new exam on a given date.

Examples:
  studyplanner exam create "Calculus final" --subject Math --date 2024-05-06
  studyplanner exam create "Chem midterm" -s Chemistry --date 2024-05-20 --chapters 6 --past-score 72`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Exams == nil {
			return cli.ErrNotInitialized
		}

		create := commands.CreateExamCommand{
			Name:             args[0],
			SubjectName:      subject,
			ExamDate:         examDate,
			Difficulty:       difficulty,
			Chapters:         chapters,
			RecommendedHours: hours,
			Priority:         priority,
		}
		if cmd.Flags().Changed("past-score") {
			create.PastScore = &pastScore
		}

		created, err := app.Exams.Create(cmd.Context(), create)
		if err != nil {
			return fmt.Errorf("failed to create exam: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Exam created: %s\n", created.ID())
		fmt.Fprintf(out, "  name: %s\n", created.Name())
		if created.ExamDate() != "" {
			fmt.Fprintf(out, "  date: %s\n", created.ExamDate())
		}
		fmt.Fprintf(out, "  recommended: %s\n", cli.FormatHours(created.RecommendedHours()))
		return nil
	},
}

func init() {
	createCmd.Flags().StringVarP(&subject, "subject", "s", "", "subject the exam belongs to")
	createCmd.Flags().StringVar(&examDate, "date", "", "exam date (YYYY-MM-DD)")
	createCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "difficulty (easy, medium, hard)")
	createCmd.Flags().Float64Var(&pastScore, "past-score", 0, "score from the last attempt (0-100)")
	createCmd.Flags().IntVar(&chapters, "chapters", 0, "number of chapters to cover")
	createCmd.Flags().Float64Var(&hours, "hours", 0, "recommended study hours (default recommendation when omitted)")
	createCmd.Flags().StringVarP(&priority, "priority", "p", "", "priority (low, medium, high)")
}
