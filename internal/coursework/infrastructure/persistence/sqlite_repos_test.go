package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/migrations"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))
	return db
}

func TestSQLiteAssignmentRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteAssignmentRepository(setupTestDB(t))

	later, err := domain.NewAssignment(domain.AssignmentDetails{Name: "Essay", SubjectName: "History", DueDate: "2024-05-10", Difficulty: "hard"})
	require.NoError(t, err)
	sooner, err := domain.NewAssignment(domain.AssignmentDetails{Name: "Lab report", DueDate: "2024-05-03", EstimatedHours: 4})
	require.NoError(t, err)
	undated, err := domain.NewAssignment(domain.AssignmentDetails{Name: "Reading"})
	require.NoError(t, err)
	for _, a := range []*domain.Assignment{later, sooner, undated} {
		require.NoError(t, repo.Save(ctx, a))
	}

	got, err := repo.FindByID(ctx, later.ID())
	require.NoError(t, err)
	assert.Equal(t, later.Details(), got.Details())
	assert.Equal(t, domain.StatusPending, got.Status())
	assert.WithinDuration(t, later.CreatedAt(), got.CreatedAt(), time.Millisecond)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Lab report", all[0].Name())
	assert.Equal(t, "Essay", all[1].Name())
	assert.Equal(t, "Reading", all[2].Name())
}

func TestSQLiteAssignmentRepository_UpsertAndPending(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteAssignmentRepository(setupTestDB(t))

	a, err := domain.NewAssignment(domain.AssignmentDetails{Name: "Essay", DueDate: "2024-05-10"})
	require.NoError(t, err)
	b, err := domain.NewAssignment(domain.AssignmentDetails{Name: "Quiz", DueDate: "2024-05-11"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))

	require.NoError(t, a.Complete())
	require.NoError(t, repo.Save(ctx, a))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := repo.FindPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID(), pending[0].ID())
}

func TestSQLiteAssignmentRepository_DeleteNotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteAssignmentRepository(setupTestDB(t))

	_, err := repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), domain.ErrAssignmentNotFound)
}

func TestSQLiteExamRepository_RoundTripsOptionalFields(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteExamRepository(setupTestDB(t))

	score := 72.5
	scored, err := domain.NewExam(domain.ExamDetails{Name: "Calculus final", SubjectName: "Math", ExamDate: "2024-06-01", PastScore: &score, Chapters: 8})
	require.NoError(t, err)
	bare, err := domain.NewExam(domain.ExamDetails{Name: "Chemistry midterm"})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, scored))
	require.NoError(t, repo.Save(ctx, bare))

	got, err := repo.FindByID(ctx, scored.ID())
	require.NoError(t, err)
	require.NotNil(t, got.PastScore())
	assert.InDelta(t, 72.5, *got.PastScore(), 1e-9)
	assert.Equal(t, 8, got.Chapters())
	assert.Equal(t, "2024-06-01", got.ExamDate())

	got, err = repo.FindByID(ctx, bare.ID())
	require.NoError(t, err)
	assert.Nil(t, got.PastScore())
	assert.Empty(t, got.ExamDate())
	assert.Zero(t, got.RecommendedHours())

	require.NoError(t, repo.Delete(ctx, bare.ID()))
	_, err = repo.FindByID(ctx, bare.ID())
	assert.ErrorIs(t, err, domain.ErrExamNotFound)
}

func TestSQLiteSubjectRepository_SaveFindDeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteSubjectRepository(setupTestDB(t))
	today := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	lastWeek := 3.0
	physics, err := domain.NewSubject(domain.SubjectDetails{
		Name: "Physics", ExamDate: "2024-05-05", HasExam: true, LastWeekHours: &lastWeek, RecommendedHours: 6,
	}, today)
	require.NoError(t, err)
	art, err := domain.NewSubject(domain.SubjectDetails{Name: "Art", Difficulty: "easy"}, today)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, physics))
	require.NoError(t, repo.Save(ctx, art))

	got, err := repo.FindByID(ctx, physics.ID())
	require.NoError(t, err)
	assert.Equal(t, physics.Details(), got.Details())
	assert.True(t, got.HasExam())
	assert.False(t, got.HasAssignment())
	assert.Equal(t, domain.PriorityHigh, got.Priority())

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Art", all[0].Name())

	n, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
