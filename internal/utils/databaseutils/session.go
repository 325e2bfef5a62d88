package databaseutils

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mdobak/go-xerrors"
)

type txKey struct{}

// SQLExecutor is satisfied by both *sql.DB and *sql.Tx.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Session runs functions inside a transaction that travels on the context.
// Every SQLTemplate call made with that context joins the transaction.
type Session interface {
	DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) error
}

type sqlSession struct {
	db   *sql.DB
	opts *sql.TxOptions
}

func NewSession(db *sql.DB) Session {
	return &sqlSession{db: db}
}

// NewSessionWithOptions is NewSession with explicit isolation level and
// read-only settings for every transaction it starts.
func NewSessionWithOptions(db *sql.DB, opts *sql.TxOptions) Session {
	return &sqlSession{db: db, opts: opts}
}

// DoTransactionally commits when fn returns nil and rolls back otherwise, or
// when fn panics. A context that already carries a transaction is reused, so
// nested calls share the outer transaction and only the outermost commits.
func (s *sqlSession) DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := s.db.BeginTx(ctx, s.opts)
	if err != nil {
		return xerrors.Newf("session: failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = errors.Join(err, xerrors.Newf("session: failed to rollback transaction: %w", rollbackErr))
			}
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = xerrors.Newf("session: failed to commit transaction: %w", commitErr)
		}
	}()

	return fn(context.WithValue(ctx, txKey{}, tx))
}

// GetSQLExecutor returns the transaction stored in ctx, or fallbackDB when ctx
// carries none.
func GetSQLExecutor(ctx context.Context, fallbackDB *sql.DB) SQLExecutor {
	dbExecutor := ctx.Value(txKey{})
	if dbExecutor == nil {
		return fallbackDB
	}

	tx, ok := dbExecutor.(*sql.Tx)
	if !ok {
		panic(fmt.Sprintf("session: value in context for txKey is not a *sql.Tx, but %T", dbExecutor))
	}
	return tx
}

// DoTransactionally is Session.DoTransactionally for functions that produce a
// value.
func DoTransactionally[T any](ctx context.Context, session Session, fn func(txCtx context.Context) (T, error)) (T, error) {
	var result T
	err := session.DoTransactionally(ctx, func(txCtx context.Context) error {
		var err error
		result, err = fn(txCtx)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
