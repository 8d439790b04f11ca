package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	sharedPersistence "github.com/felixgeelhaar/studyplanner/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
)

const notificationColumns = `id, type, title, message, item_type, item_ids, is_read, created_at, updated_at`

// SQLiteRepository implements domain.Repository using SQLite.
type SQLiteRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteRepository creates a new SQLite notification repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

// Save inserts or updates a notification.
func (r *SQLiteRepository) Save(ctx context.Context, n *domain.Notification) error {
	read := 0
	if n.IsRead() {
		read = 1
	}
	_, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			is_read = excluded.is_read,
			updated_at = excluded.updated_at`,
		n.ID().String(), string(n.Type()), n.Title(), n.Message(), n.ItemType(), n.JoinedItemIDs(), read,
		sharedPersistence.FormatSQLiteTime(n.CreatedAt()), sharedPersistence.FormatSQLiteTime(n.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	return nil
}

// FindByID retrieves a notification by its ID.
func (r *SQLiteRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	row := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT `+notificationColumns+` FROM notifications WHERE id = ?`, id.String())
	n, err := scanNotification(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotificationNotFound
	}
	return n, err
}

// List returns notifications newest first.
func (r *SQLiteRepository) List(ctx context.Context, unreadOnly bool) ([]*domain.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY created_at DESC, rowid DESC`

	rows, err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// CountUnread counts notifications not yet read.
func (r *SQLiteRepository) CountUnread(ctx context.Context) (int, error) {
	var n int
	err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE is_read = 0`).Scan(&n)
	return n, err
}

// HasUnreadMessage reports whether an unread notification carries message.
func (r *SQLiteRepository) HasUnreadMessage(ctx context.Context, message string) (bool, error) {
	var exists int
	err := sharedPersistence.SQLiteExecutor(ctx, r.db).QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM notifications WHERE message = ? AND is_read = 0)`, message).Scan(&exists)
	return exists == 1, err
}

// MarkAllRead flags every unread notification as read.
func (r *SQLiteRepository) MarkAllRead(ctx context.Context) (int, error) {
	res, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE notifications SET is_read = 1, updated_at = ? WHERE is_read = 0`,
		sharedPersistence.FormatSQLiteTime(r.now()))
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Delete removes a notification.
func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// DeleteAll removes every notification.
func (r *SQLiteRepository) DeleteAll(ctx context.Context) (int, error) {
	res, err := sharedPersistence.SQLiteExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM notifications`)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanNotification(row rowScanner) (*domain.Notification, error) {
	var (
		id, kind, itemIDs, createdAt, updatedAt string
		read                                    int
		d                                       domain.Draft
	)
	if err := row.Scan(&id, &kind, &d.Title, &d.Message, &d.ItemType, &itemIDs, &read, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid notification id: %w", err)
	}
	ct, err := sharedPersistence.ParseSQLiteTime(createdAt)
	if err != nil {
		return nil, err
	}
	ut, err := sharedPersistence.ParseSQLiteTime(updatedAt)
	if err != nil {
		return nil, err
	}
	d.Type = domain.Type(kind)
	d.ItemIDs = domain.SplitItemIDs(itemIDs)
	return domain.RehydrateNotification(uid, d, read != 0, ct, ut), nil
}
