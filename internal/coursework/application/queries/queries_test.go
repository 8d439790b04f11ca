package queries

import (
	"context"
	"testing"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/infrastructure/persistence"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T) (*Handler, *persistence.SQLiteAssignmentRepository, *persistence.SQLiteExamRepository, *persistence.SQLiteSubjectRepository) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))

	assignments := persistence.NewSQLiteAssignmentRepository(db)
	exams := persistence.NewSQLiteExamRepository(db)
	subjects := persistence.NewSQLiteSubjectRepository(db)
	return NewHandler(assignments, exams, subjects), assignments, exams, subjects
}

func TestListAssignments_PendingFilter(t *testing.T) {
	ctx := context.Background()
	h, assignments, _, _ := newHandler(t)

	done, err := domain.NewAssignment(domain.AssignmentDetails{Name: "Done", DueDate: "2024-05-02", EstimatedHours: 1})
	require.NoError(t, err)
	require.NoError(t, done.Complete())
	open, err := domain.NewAssignment(domain.AssignmentDetails{Name: "Open", DueDate: "2024-05-03", EstimatedHours: 2})
	require.NoError(t, err)
	require.NoError(t, assignments.Save(ctx, done))
	require.NoError(t, assignments.Save(ctx, open))

	all, err := h.ListAssignments(ctx, ListAssignmentsQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := h.ListAssignments(ctx, ListAssignmentsQuery{PendingOnly: true})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Open", pending[0].Name)
	assert.Equal(t, "pending", pending[0].Status)
	assert.Equal(t, "medium", pending[0].Difficulty)

	got, err := h.GetAssignment(ctx, done.ID())
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
}

func TestGetRecords_NotFound(t *testing.T) {
	ctx := context.Background()
	h, _, _, _ := newHandler(t)

	_, err := h.GetAssignment(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
	_, err = h.GetExam(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrExamNotFound)
	_, err = h.GetSubject(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrSubjectNotFound)
}

func TestListExamsAndSubjects(t *testing.T) {
	ctx := context.Background()
	h, _, exams, subjects := newHandler(t)

	score := 80.0
	e, err := domain.NewExam(domain.ExamDetails{Name: "Biology", ExamDate: "2024-05-20", PastScore: &score, RecommendedHours: 3})
	require.NoError(t, err)
	require.NoError(t, exams.Save(ctx, e))

	s, err := domain.NewSubject(domain.SubjectDetails{Name: "Chemistry", Difficulty: "hard", RecommendedHours: 4},
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NoError(t, subjects.Save(ctx, s))

	examViews, err := h.ListExams(ctx)
	require.NoError(t, err)
	require.Len(t, examViews, 1)
	require.NotNil(t, examViews[0].PastScore)
	assert.Equal(t, 80.0, *examViews[0].PastScore)

	subjectViews, err := h.ListSubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjectViews, 1)
	assert.Equal(t, "hard", subjectViews[0].Difficulty)
	assert.Equal(t, 4.0, subjectViews[0].RecommendedHours)

	got, err := h.GetSubject(ctx, s.ID())
	require.NoError(t, err)
	assert.Equal(t, "Chemistry", got.Name)
}
