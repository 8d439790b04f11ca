package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	courseworkCommands "github.com/felixgeelhaar/studyplanner/internal/coursework/application/commands"
	notificationQueries "github.com/felixgeelhaar/studyplanner/internal/notifications/application/queries"
	planningCommands "github.com/felixgeelhaar/studyplanner/internal/planning/application/commands"
	planningQueries "github.com/felixgeelhaar/studyplanner/internal/planning/application/queries"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/studyplanner/pkg/config"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func newLocalContainer(t *testing.T) *Container {
	t.Helper()
	cfg := &config.Config{
		AppEnv:          "development",
		SQLitePath:      filepath.Join(t.TempDir(), "planner.db"),
		PlanCacheTTL:    time.Minute,
		PlanHoursPerDay: 4,
	}
	c, err := NewContainer(context.Background(), cfg, nil, Options{
		Metrics:     observability.NewInMemoryMetrics(),
		Clock:       planningDomain.FixedClock(testToday),
		LocalEvents: true,
	})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c
}

func TestNewContainer_LocalMode(t *testing.T) {
	c := newLocalContainer(t)

	assert.Equal(t, database.DriverSQLite, c.Driver)
	assert.NotNil(t, c.DB)
	assert.Nil(t, c.Pool)
	assert.Nil(t, c.RedisClient)
	assert.Nil(t, c.CalendarSyncer)
	assert.NotNil(t, c.EventBus)

	report := c.HealthChecks().Check(context.Background())
	assert.Equal(t, observability.HealthStatusHealthy, report.Status)
	assert.Contains(t, report.Checks, "database")
}

func TestNewContainer_BadTrainingData(t *testing.T) {
	cfg := &config.Config{
		SQLitePath:       filepath.Join(t.TempDir(), "planner.db"),
		ModelTrainingCSV: filepath.Join(t.TempDir(), "missing.csv"),
	}
	_, err := NewContainer(context.Background(), cfg, nil, Options{})
	assert.ErrorContains(t, err, "failed to load training data")
}

func TestContainer_EndToEnd(t *testing.T) {
	ctx := context.Background()
	c := newLocalContainer(t)

	_, err := c.AssignmentHandler.Create(ctx, courseworkCommands.CreateAssignmentCommand{
		Name: "Essay", SubjectName: "History", DueDate: "2024-05-03", EstimatedHours: 3,
	})
	require.NoError(t, err)
	_, err = c.AssignmentHandler.Create(ctx, courseworkCommands.CreateAssignmentCommand{
		Name: "Lab report", SubjectName: "Physics", DueDate: "2024-05-03", EstimatedHours: 2,
	})
	require.NoError(t, err)

	subject, err := c.SubjectHandler.Create(ctx, courseworkCommands.CreateSubjectCommand{Name: "Chemistry", Difficulty: "hard", Chapters: 10})
	require.NoError(t, err)
	assert.Positive(t, subject.RecommendedHours())

	// Coursework events reach the clash subscriber through the local outbox.
	require.NoError(t, c.FlushEvents(ctx))
	notes, err := c.NotificationQueries.List(ctx, notificationQueries.ListNotificationsQuery{UnreadOnly: true})
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Assignment Clash Detected", notes[0].Title)

	generated, err := c.GeneratePlanHandler.Handle(ctx, planningCommands.GeneratePlanCommand{HoursPerDay: c.Config.PlanHoursPerDay})
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", generated.StartDate)
	assert.Equal(t, "2024-05-04", generated.EndDate)
	require.Positive(t, generated.Plan.SlotCount())

	view, err := c.GetWeeklyPlanHandler.Handle(ctx, planningQueries.GetWeeklyPlanQuery{})
	require.NoError(t, err)
	assert.Equal(t, generated.Plan.SlotCount(), view.SlotCount)

	ics, err := c.ExportPlanHandler.Handle(ctx, planningQueries.ExportPlanQuery{})
	require.NoError(t, err)
	assert.Contains(t, string(ics), "BEGIN:VCALENDAR")

	_, err = c.SyncCalendarHandler.Handle(ctx, planningCommands.SyncCalendarCommand{})
	assert.ErrorIs(t, err, planningCommands.ErrCalendarNotConfigured)

	cleared, err := c.ClearAllHandler.Handle(ctx, ClearAllCommand{})
	require.NoError(t, err)
	assert.Equal(t, 2, cleared.Assignments)
	assert.Equal(t, 1, cleared.Subjects)
	assert.Equal(t, 1, cleared.Notifications)
	assert.Equal(t, generated.Plan.SlotCount(), cleared.PlanSlots)

	view, err = c.GetWeeklyPlanHandler.Handle(ctx, planningQueries.GetWeeklyPlanQuery{})
	require.NoError(t, err)
	assert.Zero(t, view.SlotCount)
}
