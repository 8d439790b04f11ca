// Package persistence carries database transactions through the context so
// that repositories of different bounded contexts join one unit of work.
package persistence

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNoTransaction is returned by Commit/Rollback when the context carries no transaction.
var ErrNoTransaction = errors.New("no transaction in context")

type sqliteTxKey struct{}

type sqliteTx struct {
	tx    *sql.Tx
	owned bool
}

// SQLiteQuerier is satisfied by both *sql.DB and *sql.Tx.
type SQLiteQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteExecutor returns the transaction stored in ctx, or db when there is none.
func SQLiteExecutor(ctx context.Context, db *sql.DB) SQLiteQuerier {
	if info, ok := ctx.Value(sqliteTxKey{}).(sqliteTx); ok && info.tx != nil {
		return info.tx
	}
	return db
}

// InSQLiteTx reports whether ctx carries a SQLite transaction.
func InSQLiteTx(ctx context.Context) bool {
	info, ok := ctx.Value(sqliteTxKey{}).(sqliteTx)
	return ok && info.tx != nil
}

// SQLiteUnitOfWork begins transactions on a SQLite handle. A Begin inside an
// existing transaction joins it; only the outermost unit commits.
type SQLiteUnitOfWork struct {
	db *sql.DB
}

// NewSQLiteUnitOfWork creates a unit of work over db.
func NewSQLiteUnitOfWork(db *sql.DB) *SQLiteUnitOfWork {
	return &SQLiteUnitOfWork{db: db}
}

func (u *SQLiteUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := ctx.Value(sqliteTxKey{}).(sqliteTx); ok && info.tx != nil {
		return context.WithValue(ctx, sqliteTxKey{}, sqliteTx{tx: info.tx}), nil
	}
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, sqliteTxKey{}, sqliteTx{tx: tx, owned: true}), nil
}

func (u *SQLiteUnitOfWork) Commit(ctx context.Context) error {
	info, ok := ctx.Value(sqliteTxKey{}).(sqliteTx)
	if !ok || info.tx == nil {
		return ErrNoTransaction
	}
	if !info.owned {
		return nil
	}
	return info.tx.Commit()
}

func (u *SQLiteUnitOfWork) Rollback(ctx context.Context) error {
	info, ok := ctx.Value(sqliteTxKey{}).(sqliteTx)
	if !ok || info.tx == nil {
		return ErrNoTransaction
	}
	if !info.owned {
		return nil
	}
	return info.tx.Rollback()
}
