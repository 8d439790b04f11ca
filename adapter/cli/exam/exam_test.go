package exam

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/studyplanner/adapter/cli/clitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExamLifecycle(t *testing.T) {
	app := clitest.NewApp(t)
	ctx := context.Background()

	subject, examDate, difficulty, chapters = "Math", "2024-05-06", "hard", 8
	clitest.SetFlags(t, createCmd, map[string]string{"past-score": "55"})
	out, err := clitest.Run(createCmd, "Calculus final")
	require.NoError(t, err)
	assert.Contains(t, out, "Exam created:")
	assert.Contains(t, out, "date: 2024-05-06")

	exams, err := app.Coursework.ListExams(ctx)
	require.NoError(t, err)
	require.Len(t, exams, 1)
	require.NotNil(t, exams[0].PastScore)
	assert.Equal(t, 55.0, *exams[0].PastScore)
	assert.Positive(t, exams[0].RecommendedHours)
	id := exams[0].ID.String()

	out, err = clitest.Run(listCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Calculus final")

	clitest.SetFlags(t, updateCmd, map[string]string{"date": "2024-05-08", "chapters": "10"})
	_, err = clitest.Run(updateCmd, id)
	require.NoError(t, err)

	got, err := app.Coursework.GetExam(ctx, exams[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-08", got.ExamDate)
	assert.Equal(t, 10, got.Chapters)
	assert.Equal(t, "Math", got.SubjectName)

	out, err = clitest.Run(deleteCmd, id)
	require.NoError(t, err)
	assert.Contains(t, out, "Exam deleted")

	out, err = clitest.Run(listCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "No exams found.")
}
