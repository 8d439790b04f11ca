package coursework

import (
	"context"
	"testing"
	"time"

	cwDomain "github.com/felixgeelhaar/studyplanner/internal/coursework/domain"
	"github.com/felixgeelhaar/studyplanner/internal/coursework/infrastructure/persistence"
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_MapsStoredCoursework(t *testing.T) {
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))

	assignments := persistence.NewSQLiteAssignmentRepository(db)
	exams := persistence.NewSQLiteExamRepository(db)
	subjects := persistence.NewSQLiteSubjectRepository(db)

	essay, err := cwDomain.NewAssignment(cwDomain.AssignmentDetails{Name: "Essay", SubjectName: "History", DueDate: "2024-05-04", EstimatedHours: 3, Difficulty: "hard"})
	require.NoError(t, err)
	done, err := cwDomain.NewAssignment(cwDomain.AssignmentDetails{Name: "Worksheet", SubjectName: "Math", EstimatedHours: 1})
	require.NoError(t, err)
	require.NoError(t, done.Complete())
	score := 45.0
	final, err := cwDomain.NewExam(cwDomain.ExamDetails{Name: "Final", SubjectName: "Math", ExamDate: "2024-05-09", PastScore: &score, Chapters: 10, RecommendedHours: 6})
	require.NoError(t, err)
	physics, err := cwDomain.NewSubject(cwDomain.SubjectDetails{Name: "Physics", RecommendedHours: 2}, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	require.NoError(t, assignments.Save(ctx, essay))
	require.NoError(t, assignments.Save(ctx, done))
	require.NoError(t, exams.Save(ctx, final))
	require.NoError(t, subjects.Save(ctx, physics))

	r := NewReader(assignments, exams, subjects)

	pending, err := r.PendingAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, domain.AssignmentRecord{
		ID: essay.ID().String(), Name: "Essay", SubjectName: "History", DueDate: "2024-05-04",
		EstimatedHours: 3, Difficulty: "hard", Priority: "medium",
	}, pending[0])

	examRecords, err := r.Exams(ctx)
	require.NoError(t, err)
	require.Len(t, examRecords, 1)
	require.NotNil(t, examRecords[0].PastScore)
	assert.Equal(t, 45.0, *examRecords[0].PastScore)
	assert.Equal(t, 10, examRecords[0].Chapters)

	item, err := domain.FromExam(examRecords[0])
	require.NoError(t, err)
	assert.Equal(t, 6.0, item.Hours)

	subjectRecords, err := r.Subjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjectRecords, 1)
	assert.Equal(t, "Physics", subjectRecords[0].Name)

	names, err := r.SubjectNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, "History", names[domain.SubjectKey(domain.CategoryAssignment, essay.ID().String())])
	assert.Equal(t, "Math", names[domain.SubjectKey(domain.CategoryAssignment, done.ID().String())])
	assert.Equal(t, "Math", names[domain.SubjectKey(domain.CategoryExam, final.ID().String())])
	assert.Equal(t, "Physics", names[domain.SubjectKey(domain.CategorySubject, physics.ID().String())])
}
