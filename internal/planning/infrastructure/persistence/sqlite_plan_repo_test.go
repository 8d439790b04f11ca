package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/migrations"
	sharedPersistence "github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/persistence"
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

func slot(itemID, date, label string, hours float64) domain.PlanSlot {
	d, _ := domain.ParseDate(date)
	return domain.PlanSlot{
		ID:          uuid.New(),
		ItemID:      itemID,
		ItemType:    domain.CategoryExam,
		ItemName:    "Exam " + itemID,
		SubjectName: "Physics",
		Day:         domain.DayName(d),
		Date:        d,
		TimeSlot:    label,
		Hours:       hours,
		Priority:    domain.PriorityHigh,
		CreatedAt:   time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestSQLitePlanRepository_ReplaceAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLitePlanRepository(setupTestDB(t))

	require.NoError(t, repo.ReplaceAll(ctx, []domain.PlanSlot{
		slot("old", "2024-04-01", "09:00-10:00", 1),
	}))
	require.NoError(t, repo.ReplaceAll(ctx, []domain.PlanSlot{
		slot("b", "2024-05-02", "09:00-10:00", 1),
		slot("a", "2024-05-01", "10:00-11:00", 0.5),
		slot("a", "2024-05-01", "09:00-10:00", 1),
	}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2024-05-01", domain.FormatDate(all[0].Date))
	assert.Equal(t, "09:00-10:00", all[0].TimeSlot)
	assert.Equal(t, "10:00-11:00", all[1].TimeSlot)
	assert.Equal(t, 0.5, all[1].Hours)
	assert.Equal(t, "b", all[2].ItemID)
	assert.Equal(t, domain.CategoryExam, all[0].ItemType)
	assert.Equal(t, domain.PriorityHigh, all[0].Priority)
	assert.Equal(t, "Wednesday", all[0].Day)

	from, _ := domain.ParseDate("2024-05-02")
	ranged, err := repo.FindByDateRange(ctx, from, from)
	require.NoError(t, err)
	require.Len(t, ranged, 1)
	assert.Equal(t, "b", ranged[0].ItemID)
}

func TestSQLitePlanRepository_DeleteAll(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLitePlanRepository(setupTestDB(t))
	require.NoError(t, repo.ReplaceAll(ctx, []domain.PlanSlot{
		slot("a", "2024-05-01", "09:00-10:00", 1),
		slot("b", "2024-05-01", "10:00-11:00", 1),
	}))

	removed, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSQLitePlanRepository_ReplaceRollsBackWithUnitOfWork(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewSQLitePlanRepository(db)
	require.NoError(t, repo.ReplaceAll(ctx, []domain.PlanSlot{slot("keep", "2024-05-01", "09:00-10:00", 1)}))

	uow := sharedPersistence.NewSQLiteUnitOfWork(db)
	txCtx, err := uow.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.ReplaceAll(txCtx, []domain.PlanSlot{slot("new", "2024-05-02", "09:00-10:00", 1)}))
	require.NoError(t, uow.Rollback(txCtx))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].ItemID)
}

func TestSQLitePlanRepository_RejectsOversizedSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLitePlanRepository(setupTestDB(t))
	require.NoError(t, repo.ReplaceAll(ctx, []domain.PlanSlot{slot("keep", "2024-05-01", "09:00-10:00", 1)}))

	err := repo.ReplaceAll(ctx, []domain.PlanSlot{
		slot("ok", "2024-05-01", "09:00-10:00", 1),
		slot("bad", "2024-05-01", "10:00-11:00", 2),
	})
	require.Error(t, err)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1, "failed replace leaves the previous plan")
	assert.Equal(t, "keep", all[0].ItemID)
}
