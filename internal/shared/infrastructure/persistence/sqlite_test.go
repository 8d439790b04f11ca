package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE slots (id INTEGER PRIMARY KEY, label TEXT)`)
	require.NoError(t, err)
	return db
}

func countSlots(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM slots`).Scan(&n))
	return n
}

func TestSQLiteUnitOfWork_CommitPersists(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	assert.True(t, InSQLiteTx(txCtx))

	_, err = SQLiteExecutor(txCtx, db).ExecContext(txCtx, `INSERT INTO slots (label) VALUES (?)`, "09:00-10:00")
	require.NoError(t, err)
	require.NoError(t, uow.Commit(txCtx))

	assert.Equal(t, 1, countSlots(t, db))
}

func TestSQLiteUnitOfWork_RollbackDiscards(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	txCtx, err := uow.Begin(context.Background())
	require.NoError(t, err)
	_, err = SQLiteExecutor(txCtx, db).ExecContext(txCtx, `INSERT INTO slots (label) VALUES (?)`, "09:00-10:00")
	require.NoError(t, err)
	require.NoError(t, uow.Rollback(txCtx))

	assert.Equal(t, 0, countSlots(t, db))
}

func TestSQLiteUnitOfWork_NestedJoinsOuter(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)

	outer, err := uow.Begin(context.Background())
	require.NoError(t, err)
	inner, err := uow.Begin(outer)
	require.NoError(t, err)

	_, err = SQLiteExecutor(inner, db).ExecContext(inner, `INSERT INTO slots (label) VALUES (?)`, "10:00-11:00")
	require.NoError(t, err)

	// inner commit is a no-op; the outer rollback discards the write
	require.NoError(t, uow.Commit(inner))
	require.NoError(t, uow.Rollback(outer))

	assert.Equal(t, 0, countSlots(t, db))
}

func TestSQLiteUnitOfWork_WithoutTransaction(t *testing.T) {
	db := setupTestDB(t)
	uow := NewSQLiteUnitOfWork(db)
	ctx := context.Background()

	assert.False(t, InSQLiteTx(ctx))
	assert.ErrorIs(t, uow.Commit(ctx), ErrNoTransaction)
	assert.ErrorIs(t, uow.Rollback(ctx), ErrNoTransaction)
	assert.Equal(t, db, SQLiteExecutor(ctx, db))
}

func TestSQLiteTime_RoundTripAndOrdering(t *testing.T) {
	early := time.Date(2024, 5, 1, 9, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	late := early.Add(1500 * time.Millisecond)

	a, b := FormatSQLiteTime(early), FormatSQLiteTime(late)
	assert.Less(t, a, b)
	assert.Len(t, a, len(b))

	parsed, err := ParseSQLiteTime(a)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(early))

	none, err := ScanNullableSQLiteTime(NullableSQLiteTime(nil))
	require.NoError(t, err)
	assert.Nil(t, none)
}
