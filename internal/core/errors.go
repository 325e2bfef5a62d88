package core

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mdobak/go-xerrors"
)

var (
	NoRecordFound       = xerrors.Message("No record found")
	ErrInvalidReference = xerrors.Message("Referenced record does not exist")
	ErrInvalidInput     = xerrors.Message("Invalid input")
	ErrInvalidID        = xerrors.Message("Invalid identifier")
)

// PostgreSQL SQLSTATE codes the API answers for.
const (
	foreignKeyViolation       = "23503"
	notNullViolation          = "23502"
	checkViolation            = "23514"
	invalidTextRepresentation = "22P02"
	numericValueOutOfRange    = "22003"
)

// sqlState extracts the SQLSTATE code from an error returned by either of the
// supported drivers.
func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translateDBError maps driver errors onto the package sentinels. Anything it
// does not recognize is returned wrapped but otherwise untouched.
func translateDBError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return xerrors.New(NoRecordFound)
	}

	switch sqlState(err) {
	case foreignKeyViolation:
		return xerrors.Newf("%v: %w", err, ErrInvalidReference)
	case notNullViolation, checkViolation, invalidTextRepresentation, numericValueOutOfRange:
		return xerrors.Newf("%v: %w", err, ErrInvalidInput)
	default:
		return xerrors.New(err)
	}
}
