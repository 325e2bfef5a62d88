package databaseutils

import (
	"context"
	"database/sql"
	"time"
)

type SQLTemplate struct {
	DB      *sql.DB
	Timeout time.Duration
}

func NewSQLTemplate(db *sql.DB, timeout time.Duration) *SQLTemplate {
	return &SQLTemplate{
		DB:      db,
		Timeout: timeout,
	}
}

func (sqlTemplate *SQLTemplate) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if sqlTemplate.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, sqlTemplate.Timeout)
}

// ExecuteQuery runs query on the transaction stored in ctx, or on the pool when
// there is none, and maps every row through extractor.
func ExecuteQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) ([]T, error) {
	ctx, cancel := sqlTemplate.withTimeout(ctx)
	defer cancel()

	rows, err := GetSQLExecutor(ctx, sqlTemplate.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		t, err := extractor(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// ExecuteSingleQuery is ExecuteQuery for statements producing exactly one row.
// It returns sql.ErrNoRows when the statement produced none.
func ExecuteSingleQuery[T any](sqlTemplate *SQLTemplate, ctx context.Context, query string, extractor func(rows *sql.Rows) (T, error), args ...any) (T, error) {
	var zero T
	results, err := ExecuteQuery(sqlTemplate, ctx, query, extractor, args...)
	if err != nil {
		return zero, err
	}
	if len(results) == 0 {
		return zero, sql.ErrNoRows
	}
	return results[0], nil
}

// ExecuteStatement runs a statement that returns no rows and reports how many
// rows it touched.
func ExecuteStatement(sqlTemplate *SQLTemplate, ctx context.Context, query string, args ...any) (int64, error) {
	ctx, cancel := sqlTemplate.withTimeout(ctx)
	defer cancel()

	result, err := GetSQLExecutor(ctx, sqlTemplate.DB).ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
