package plan

import (
	"github.com/spf13/cobra"
)

// Cmd is the plan command group
var Cmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and view the study plan",
	Long: `Generate a day-by-day study plan from your assignments, exams and subjects,
show it, export it as iCalendar or push it to a CalDAV calendar.`,
}

func init() {
	Cmd.AddCommand(generateCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(clearCmd)
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(syncCmd)
}
