package estimate

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/estimation/infrastructure/csvdata"
	"github.com/spf13/cobra"
)

var (
	pastScore  float64
	difficulty string
	chapters   int
	daysLeft   int
	dataFile   string
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the study hours for a subject",
	Long: `Predict the study hours for a subject from its past score, difficulty,
chapter count and the days left until the exam.

Examples:
  studyplanner estimate predict --past-score 60 --difficulty hard --chapters 8 --days-left 10
  studyplanner estimate predict --difficulty easy --data history.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Estimator == nil {
			return cli.ErrNotInitialized
		}

		if dataFile != "" {
			samples, err := csvdata.LoadFile(dataFile)
			if err != nil {
				return fmt.Errorf("failed to load training data: %w", err)
			}
			app.Estimator.Train(samples)
		}

		hours, err := app.Estimator.PredictHours(pastScore, difficulty, chapters, daysLeft)
		if err != nil {
			return fmt.Errorf("failed to predict hours: %w", err)
		}
		model, _ := app.Estimator.Model()

		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, map[string]any{"hours": hours, "model": model})
		}
		fmt.Fprintf(out, "Recommended: %s (%s)\n", cli.FormatHours(hours), model)
		return nil
	},
}

func init() {
	predictCmd.Flags().Float64Var(&pastScore, "past-score", 0, "score from the last exam (0-100)")
	predictCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "medium", "difficulty (easy, medium, hard)")
	predictCmd.Flags().IntVar(&chapters, "chapters", 0, "number of chapters")
	predictCmd.Flags().IntVar(&daysLeft, "days-left", 7, "days until the exam")
	predictCmd.Flags().StringVar(&dataFile, "data", "", "train on this CSV file before predicting")
}
