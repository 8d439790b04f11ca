package queries

import (
	"context"
	"testing"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	"github.com/felixgeelhaar/studyplanner/internal/notifications/infrastructure/persistence"
	planningServices "github.com/felixgeelhaar/studyplanner/internal/planning/application/services"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	assignments []planningDomain.AssignmentRecord
	exams       []planningDomain.ExamRecord
}

func (r stubReader) PendingAssignments(context.Context) ([]planningDomain.AssignmentRecord, error) {
	return r.assignments, nil
}

func (r stubReader) Exams(context.Context) ([]planningDomain.ExamRecord, error) {
	return r.exams, nil
}

func (r stubReader) Subjects(context.Context) ([]planningDomain.SubjectRecord, error) {
	return nil, nil
}

func newRepo(t *testing.T) *persistence.SQLiteRepository {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.RunSQLiteMigrations(ctx, db))
	return persistence.NewSQLiteRepository(db)
}

func save(t *testing.T, repo domain.Repository, d domain.Draft) *domain.Notification {
	t.Helper()
	n, err := domain.NewNotification(d)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), n))
	return n
}

func TestList(t *testing.T) {
	ctx := context.Background()
	repo := newRepo(t)
	first := save(t, repo, domain.Draft{Type: domain.TypeClash, Title: "Exam Clash Detected", Message: "first",
		ItemType: domain.ItemExam, ItemIDs: []string{"e1", "e2"}})
	second := save(t, repo, domain.Draft{Type: domain.TypeReminder, Title: "Upcoming Exam", Message: "second",
		ItemType: domain.ItemExam, ItemIDs: []string{"e1"}})

	first.MarkRead()
	require.NoError(t, repo.Save(ctx, first))

	h := NewHandler(repo, nil, nil, nil)

	all, err := h.List(ctx, ListNotificationsQuery{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID(), all[0].ID)
	assert.Equal(t, "reminder", all[0].Type)
	assert.Equal(t, []string{"e1", "e2"}, all[1].ItemIDs)
	assert.True(t, all[1].IsRead)

	unread, err := h.List(ctx, ListNotificationsQuery{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "second", unread[0].Message)

	count, err := h.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestClashSummary(t *testing.T) {
	reader := stubReader{
		assignments: []planningDomain.AssignmentRecord{
			{ID: "a1", Name: "Essay", DueDate: "2024-05-10", EstimatedHours: 2},
			{ID: "a2", Name: "Lab", DueDate: "2024-05-10", EstimatedHours: 2},
		},
		exams: []planningDomain.ExamRecord{
			{ID: "e1", Name: "Calculus", ExamDate: "2024-05-11", RecommendedHours: 3},
			{ID: "e2", Name: "History", ExamDate: "2024-06-30", RecommendedHours: 3},
		},
	}
	scheduler := planningServices.NewScheduler(planningServices.DefaultSchedulerConfig(), nil, nil, nil)
	h := NewHandler(newRepo(t), reader, scheduler, planningServices.NewClashDetector())

	summary, err := h.ClashSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, map[string]int{"assignment-assignment": 1, "assignment-exam": 2}, summary.ByKind)
	assert.Equal(t, map[string]int{"conflict": 1, "warning": 2}, summary.BySeverity)
}
