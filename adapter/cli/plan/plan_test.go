package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/clitest"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCoursework(t *testing.T, app *cli.App) {
	t.Helper()
	ctx := context.Background()
	_, err := app.Assignments.Create(ctx, commands.CreateAssignmentCommand{
		Name: "Essay", SubjectName: "History", DueDate: "2024-05-03", EstimatedHours: 3,
	})
	require.NoError(t, err)
	_, err = app.Exams.Create(ctx, commands.CreateExamCommand{
		Name: "Calculus final", SubjectName: "Math", ExamDate: "2024-05-06", RecommendedHours: 6,
	})
	require.NoError(t, err)
}

func TestGenerate_NothingToPlan(t *testing.T) {
	clitest.NewApp(t)

	_, err := clitest.Run(generateCmd)
	assert.ErrorContains(t, err, "nothing to plan")
}

func TestPlanWorkflow(t *testing.T) {
	app := clitest.NewApp(t)
	seedCoursework(t, app)

	out, err := clitest.Run(generateCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Plan generated: 2024-05-01 to 2024-05-07")

	out, err = clitest.Run(showCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "(2024-05-01)")
	assert.Contains(t, out, "Essay [History]")
	assert.Contains(t, out, "Calculus final [Math]")
	assert.Contains(t, out, "Saturday (2024-05-04, weekend)")
	assert.Contains(t, out, "on weekends")

	cli.SetJSONOutput(true)
	out, err = clitest.Run(showCmd)
	require.NoError(t, err)
	assert.Contains(t, out, `"slot_count"`)
	cli.SetJSONOutput(false)

	path := filepath.Join(t.TempDir(), "exports", "plan.ics")
	exportOutput = path
	t.Cleanup(func() { exportOutput = "" })
	out, err = clitest.Run(exportCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Plan exported to")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")

	_, err = clitest.Run(syncCmd)
	assert.ErrorContains(t, err, "not configured")

	out, err = clitest.Run(clearCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Plan cleared:")

	out, err = clitest.Run(showCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "No plan stored.")
}

func TestExport_NoPlan(t *testing.T) {
	clitest.NewApp(t)

	_, err := clitest.Run(exportCmd)
	assert.ErrorContains(t, err, "no plan stored")
}

func TestGenerate_ExplicitRange(t *testing.T) {
	app := clitest.NewApp(t)
	seedCoursework(t, app)

	clitest.SetFlags(t, generateCmd, map[string]string{"hours": "2"})
	startDate, endDate = "2024-05-01", "2024-05-03"
	t.Cleanup(func() { startDate, endDate = "", "" })

	out, err := clitest.Run(generateCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Plan generated: 2024-05-01 to 2024-05-03")
}
