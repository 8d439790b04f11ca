package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	sharedPersistence "github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

const planSlotColumns = `id, item_id, item_type, item_name, subject_name, day, date, time_slot, hours, priority, created_at`

// SQLitePlanRepository implements domain.PlanRepository using SQLite.
type SQLitePlanRepository struct {
	db *sql.DB
}

// NewSQLitePlanRepository creates a new SQLite plan repository.
func NewSQLitePlanRepository(db *sql.DB) *SQLitePlanRepository {
	return &SQLitePlanRepository{db: db}
}

// ReplaceAll swaps the stored plan for slots. Without a surrounding unit of
// work the delete and inserts still share one transaction.
func (r *SQLitePlanRepository) ReplaceAll(ctx context.Context, slots []domain.PlanSlot) error {
	if sharedPersistence.InSQLiteTx(ctx) {
		return r.replace(ctx, slots)
	}

	uow := sharedPersistence.NewSQLiteUnitOfWork(r.db)
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := r.replace(txCtx, slots); err != nil {
		_ = uow.Rollback(txCtx)
		return err
	}
	return uow.Commit(txCtx)
}

func (r *SQLitePlanRepository) replace(ctx context.Context, slots []domain.PlanSlot) error {
	q := sharedPersistence.SQLiteExecutor(ctx, r.db)
	if _, err := q.ExecContext(ctx, `DELETE FROM plan_slots`); err != nil {
		return fmt.Errorf("clear plan slots: %w", err)
	}

	for _, s := range slots {
		_, err := q.ExecContext(ctx, `
			INSERT INTO plan_slots (`+planSlotColumns+`, category)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID.String(),
			s.ItemID,
			s.ItemType.String(),
			s.ItemName,
			s.SubjectName,
			s.Day,
			domain.FormatDate(s.Date),
			s.TimeSlot,
			s.Hours,
			s.Priority.String(),
			sharedPersistence.FormatSQLiteTime(s.CreatedAt),
			s.Category(),
		)
		if err != nil {
			return fmt.Errorf("insert plan slot %s: %w", s.ItemID, err)
		}
	}
	return nil
}

// DeleteAll removes every stored slot.
func (r *SQLitePlanRepository) DeleteAll(ctx context.Context) (int, error) {
	res, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM plan_slots`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// FindAll returns every stored slot ordered by date and time slot.
func (r *SQLitePlanRepository) FindAll(ctx context.Context) ([]domain.PlanSlot, error) {
	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx,
		`SELECT `+planSlotColumns+` FROM plan_slots ORDER BY date, time_slot, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteSlots(rows)
}

// FindByDateRange returns slots dated within [from, to].
func (r *SQLitePlanRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.PlanSlot, error) {
	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx,
		`SELECT `+planSlotColumns+` FROM plan_slots
		 WHERE date >= ? AND date <= ?
		 ORDER BY date, time_slot, rowid`,
		domain.FormatDate(from), domain.FormatDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSQLiteSlots(rows)
}

func scanSQLiteSlots(rows *sql.Rows) ([]domain.PlanSlot, error) {
	var slots []domain.PlanSlot
	for rows.Next() {
		var (
			id, itemType, date, priority, createdAt string
			s                                      domain.PlanSlot
		)
		if err := rows.Scan(&id, &s.ItemID, &itemType, &s.ItemName, &s.SubjectName,
			&s.Day, &date, &s.TimeSlot, &s.Hours, &priority, &createdAt); err != nil {
			return nil, err
		}

		var err error
		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid plan slot id: %w", err)
		}
		if err := decodeSlot(&s, itemType, date, priority); err != nil {
			return nil, err
		}
		if s.CreatedAt, err = sharedPersistence.ParseSQLiteTime(createdAt); err != nil {
			return nil, fmt.Errorf("invalid created_at: %w", err)
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

func decodeSlot(s *domain.PlanSlot, itemType, date, priority string) error {
	var err error
	if s.ItemType, err = domain.ParseCategory(itemType); err != nil {
		return fmt.Errorf("invalid item_type %q in database: %w", itemType, err)
	}
	if s.Date, err = domain.ParseDate(date); err != nil {
		return fmt.Errorf("invalid date in database: %w", err)
	}
	if s.Priority, err = domain.ParsePriority(priority); err != nil {
		return fmt.Errorf("invalid priority in database: %w", err)
	}
	return nil
}
