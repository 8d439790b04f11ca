package estimate

import (
	"github.com/spf13/cobra"
)

// Cmd is the estimate command group
var Cmd = &cobra.Command{
	Use:   "estimate",
	Short: "Predict study hours",
	Long:  `Predict how many hours a subject needs and inspect the study-hours model.`,
}

func init() {
	Cmd.AddCommand(predictCmd)
	Cmd.AddCommand(modelCmd)
	Cmd.AddCommand(sampleDataCmd)
}
