package estimate

import (
	"bytes"
	"fmt"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/internal/estimation/domain"
	"github.com/felixgeelhaar/studyplanner/internal/estimation/infrastructure/csvdata"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/security"
	"github.com/spf13/cobra"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Show the active study-hours model",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()
		if app == nil || app.Estimator == nil {
			return cli.ErrNotInitialized
		}

		name, samples := app.Estimator.Model()
		out := cmd.OutOrStdout()
		if cli.JSONOutput() {
			return cli.PrintJSON(out, map[string]any{"model": name, "samples": samples})
		}
		fmt.Fprintf(out, "Model: %s\n", name)
		fmt.Fprintf(out, "  trained on: %d samples\n", samples)
		return nil
	},
}

var sampleOutput string

var sampleDataCmd = &cobra.Command{
	Use:   "sample-data",
	Short: "Write the built-in training data as CSV",
	Long: `Write the built-in training rows as CSV. The file can be extended and
passed back with MODEL_TRAINING_CSV or 'estimate predict --data'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var buf bytes.Buffer
		if err := csvdata.Write(&buf, domain.DefaultSamples()); err != nil {
			return fmt.Errorf("failed to encode training data: %w", err)
		}

		if sampleOutput == "" {
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		}
		if err := security.WriteFile(sampleOutput, buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write %s: %w", sampleOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Training data written to %s\n", sampleOutput)
		return nil
	},
}

func init() {
	sampleDataCmd.Flags().StringVarP(&sampleOutput, "output", "o", "", "write to this file instead of stdout")
}
