package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	sharedPersistence "github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements domain.Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL notification repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts or updates a notification.
func (r *PostgresRepository) Save(ctx context.Context, n *domain.Notification) error {
	_, err := sharedPersistence.PgExecutor(ctx, r.pool).Exec(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			is_read = EXCLUDED.is_read,
			updated_at = EXCLUDED.updated_at`,
		n.ID(), string(n.Type()), n.Title(), n.Message(), n.ItemType(), n.JoinedItemIDs(), n.IsRead(),
		n.CreatedAt(), n.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return nil
}

// FindByID retrieves a notification by its ID.
func (r *PostgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	row := sharedPersistence.PgExecutor(ctx, r.pool).QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
	n, err := scanPgNotification(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	return n, err
}

// List returns notifications newest first.
func (r *PostgresRepository) List(ctx context.Context, unreadOnly bool) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications`
	if unreadOnly {
		query += ` WHERE NOT is_read`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := sharedPersistence.PgExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		n, err := scanPgNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnread counts notifications not yet read.
func (r *PostgresRepository) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := sharedPersistence.PgExecutor(ctx, r.pool).QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE NOT is_read`).Scan(&n)
	return n, err
}

// HasUnreadMessage reports whether an unread notification carries message.
func (r *PostgresRepository) HasUnreadMessage(ctx context.Context, message string) (bool, error) {
	var exists bool
	err := sharedPersistence.PgExecutor(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM notifications WHERE message = $1 AND NOT is_read)`, message).Scan(&exists)
	return exists, err
}

// MarkAllRead flags every unread notification as read.
func (r *PostgresRepository) MarkAllRead(ctx context.Context) (int, error) {
	tag, err := sharedPersistence.PgExecutor(ctx, r.pool).Exec(ctx,
		`UPDATE notifications SET is_read = TRUE, updated_at = NOW() WHERE NOT is_read`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// Delete removes a notification.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := sharedPersistence.PgExecutor(ctx, r.pool).Exec(ctx,
		`DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// DeleteAll removes every notification.
func (r *PostgresRepository) DeleteAll(ctx context.Context) (int, error) {
	tag, err := sharedPersistence.PgExecutor(ctx, r.pool).Exec(ctx, `DELETE FROM notifications`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func scanPgNotification(row pgx.Row) (*domain.Notification, error) {
	var (
		id                   uuid.UUID
		kind, itemIDs        string
		read                 bool
		createdAt, updatedAt time.Time
		d                    domain.Draft
	)
	if err := row.Scan(&id, &kind, &d.Title, &d.Message, &d.ItemType, &itemIDs, &read, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	d.Type = domain.Type(kind)
	d.ItemIDs = domain.SplitItemIDs(itemIDs)
	return domain.RehydrateNotification(id, d, read, createdAt, updatedAt), nil
}
