package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	sharedPersistence "github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPlanRepository implements domain.PlanRepository using PostgreSQL.
type PostgresPlanRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPlanRepository creates a new PostgreSQL plan repository.
func NewPostgresPlanRepository(pool *pgxpool.Pool) *PostgresPlanRepository {
	return &PostgresPlanRepository{pool: pool}
}

// ReplaceAll swaps the stored plan for slots, copying the new rows in bulk.
func (r *PostgresPlanRepository) ReplaceAll(ctx context.Context, slots []domain.PlanSlot) error {
	uow := sharedPersistence.NewPostgresUnitOfWork(r.pool)
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}

	q := sharedPersistence.PgExecutor(txCtx, r.pool)
	if _, err := q.Exec(txCtx, `DELETE FROM plan_slots`); err != nil {
		_ = uow.Rollback(txCtx)
		return fmt.Errorf("clear plan slots: %w", err)
	}

	batch := &pgx.Batch{}
	for _, s := range slots {
		batch.Queue(`
			INSERT INTO plan_slots (`+planSlotColumns+`, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			s.ID, s.ItemID, s.ItemType.String(), s.ItemName, s.SubjectName, s.Day,
			s.Date, s.TimeSlot, s.Hours, s.Priority.String(), s.CreatedAt, s.Category(),
		)
	}
	if batch.Len() > 0 {
		tx, ok := q.(pgx.Tx)
		if !ok {
			_ = uow.Rollback(txCtx)
			return fmt.Errorf("plan replace requires a transaction")
		}
		if err := tx.SendBatch(txCtx, batch).Close(); err != nil {
			_ = uow.Rollback(txCtx)
			return fmt.Errorf("insert plan slots: %w", err)
		}
	}
	return uow.Commit(txCtx)
}

// DeleteAll removes every stored slot.
func (r *PostgresPlanRepository) DeleteAll(ctx context.Context) (int, error) {
	tag, err := sharedPersistence.PgExecutor(ctx, r.pool).Exec(ctx, `DELETE FROM plan_slots`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// FindAll returns every stored slot ordered by date and time slot.
func (r *PostgresPlanRepository) FindAll(ctx context.Context) ([]domain.PlanSlot, error) {
	rows, err := sharedPersistence.PgExecutor(ctx, r.pool).Query(ctx,
		`SELECT `+planSlotColumns+` FROM plan_slots ORDER BY date, time_slot, created_at`)
	if err != nil {
		return nil, err
	}
	return scanPgSlots(rows)
}

// FindByDateRange returns slots dated within [from, to].
func (r *PostgresPlanRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]domain.PlanSlot, error) {
	rows, err := sharedPersistence.PgExecutor(ctx, r.pool).Query(ctx,
		`SELECT `+planSlotColumns+` FROM plan_slots
		 WHERE date BETWEEN $1 AND $2
		 ORDER BY date, time_slot, created_at`,
		domain.CivilDate(from), domain.CivilDate(to))
	if err != nil {
		return nil, err
	}
	return scanPgSlots(rows)
}

func scanPgSlots(rows pgx.Rows) ([]domain.PlanSlot, error) {
	defer rows.Close()

	var slots []domain.PlanSlot
	for rows.Next() {
		var (
			s                  domain.PlanSlot
			id                 uuid.UUID
			itemType, priority string
			date               time.Time
		)
		if err := rows.Scan(&id, &s.ItemID, &itemType, &s.ItemName, &s.SubjectName,
			&s.Day, &date, &s.TimeSlot, &s.Hours, &priority, &s.CreatedAt); err != nil {
			return nil, err
		}
		s.ID = id
		if err := decodeSlot(&s, itemType, domain.FormatDate(date), priority); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}
