package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgTxKey struct{}

type pgTx struct {
	tx    pgx.Tx
	owned bool
}

// PgQuerier is satisfied by both *pgxpool.Pool and pgx.Tx.
type PgQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PgExecutor returns the transaction stored in ctx, or pool when there is none.
func PgExecutor(ctx context.Context, pool *pgxpool.Pool) PgQuerier {
	if info, ok := ctx.Value(pgTxKey{}).(pgTx); ok && info.tx != nil {
		return info.tx
	}
	return pool
}

// PostgresUnitOfWork is the server-mode counterpart of SQLiteUnitOfWork.
type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPostgresUnitOfWork creates a unit of work over pool.
func NewPostgresUnitOfWork(pool *pgxpool.Pool) *PostgresUnitOfWork {
	return &PostgresUnitOfWork{pool: pool}
}

func (u *PostgresUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	if info, ok := ctx.Value(pgTxKey{}).(pgTx); ok && info.tx != nil {
		return context.WithValue(ctx, pgTxKey{}, pgTx{tx: info.tx}), nil
	}
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return context.WithValue(ctx, pgTxKey{}, pgTx{tx: tx, owned: true}), nil
}

func (u *PostgresUnitOfWork) Commit(ctx context.Context) error {
	info, ok := ctx.Value(pgTxKey{}).(pgTx)
	if !ok || info.tx == nil {
		return ErrNoTransaction
	}
	if !info.owned {
		return nil
	}
	return info.tx.Commit(ctx)
}

func (u *PostgresUnitOfWork) Rollback(ctx context.Context) error {
	info, ok := ctx.Value(pgTxKey{}).(pgTx)
	if !ok || info.tx == nil {
		return ErrNoTransaction
	}
	if !info.owned {
		return nil
	}
	return info.tx.Rollback(ctx)
}
