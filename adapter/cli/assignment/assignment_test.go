package assignment

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/studyplanner/adapter/cli"
	"github.com/felixgeelhaar/studyplanner/adapter/cli/clitest"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/application/queries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands_RequireApp(t *testing.T) {
	cli.SetApp(nil)

	for _, cmd := range Cmd.Commands() {
		_, err := clitest.Run(cmd, "00000000-0000-0000-0000-000000000001")
		assert.ErrorIs(t, err, cli.ErrNotInitialized, cmd.Name())
	}
}

func TestAssignmentLifecycle(t *testing.T) {
	app := clitest.NewApp(t)
	ctx := context.Background()

	subject, dueDate, hours, priority = "English", "2024-05-10", 5, "high"
	out, err := clitest.Run(createCmd, "Essay")
	require.NoError(t, err)
	assert.Contains(t, out, "Assignment created:")
	assert.Contains(t, out, "due: 2024-05-10")
	assert.Contains(t, out, "estimate: 5h")

	views, err := app.Coursework.ListAssignments(ctx, queries.ListAssignmentsQuery{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	id := views[0].ID.String()

	out, err = clitest.Run(listCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Essay")
	assert.Contains(t, out, "English")

	clitest.SetFlags(t, updateCmd, map[string]string{"due": "2024-05-12", "hours": "6"})
	out, err = clitest.Run(updateCmd, id)
	require.NoError(t, err)
	assert.Contains(t, out, "Assignment updated: Essay")

	got, err := app.Coursework.GetAssignment(ctx, views[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-12", got.DueDate)
	assert.Equal(t, 6.0, got.EstimatedHours)
	assert.Equal(t, "English", got.SubjectName)

	_, err = clitest.Run(completeCmd, id)
	require.NoError(t, err)

	pendingOnly = true
	t.Cleanup(func() { pendingOnly = false })
	out, err = clitest.Run(listCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "No assignments found.")

	_, err = clitest.Run(deleteCmd, id)
	require.NoError(t, err)

	views, err = app.Coursework.ListAssignments(ctx, queries.ListAssignmentsQuery{})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestCreate_InvalidDate(t *testing.T) {
	clitest.NewApp(t)

	subject, dueDate, hours, priority = "Math", "next week", 0, ""
	_, err := clitest.Run(createCmd, "Worksheet")
	assert.ErrorContains(t, err, "failed to create assignment")
}

func TestDelete_InvalidID(t *testing.T) {
	clitest.NewApp(t)

	_, err := clitest.Run(deleteCmd, "not-a-uuid")
	assert.ErrorContains(t, err, "invalid id")
}

func TestList_JSON(t *testing.T) {
	clitest.NewApp(t)

	subject, dueDate, hours, priority = "Physics", "2024-05-03", 2, ""
	_, err := clitest.Run(createCmd, "Lab report")
	require.NoError(t, err)

	cli.SetJSONOutput(true)
	out, err := clitest.Run(listCmd)
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Lab report"`)
	assert.Contains(t, out, `"status": "pending"`)
}
