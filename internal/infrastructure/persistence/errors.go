package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// sqlStateErrors maps postgres SQLSTATE codes to the failure reported to clients
var sqlStateErrors = map[string]*shared.Error{
	"23505": shared.NewConflictError("A record with the same key already exists."),
	"23503": shared.NewNotFoundError("The required relation does not exist."),
	"42P01": shared.NewNotFoundError("The table does not exist."),
	"42703": shared.NewNotFoundError("A column in the record does not exist."),
	"23514": shared.NewGenericError("The record violates a check constraint."),
	"23502": shared.NewGenericError("The record violates a not-null constraint."),
	"2201W": shared.NewGenericError("A value in the record violates the length constraint."),
	"22003": shared.NewGenericError("A value in the record violates the numeric constraint."),
	"22P02": shared.NewGenericError("A value in the record violates the data type constraint."),
	"22P05": shared.NewGenericError("The JSON value in the record is not valid."),
	"22P06": shared.NewGenericError("The array value in the record is not valid."),
	"42601": shared.NewGenericError("The query is not valid."),
}

var errKeyNotFound = shared.NewNotFoundError("The provided key was not found.")

// ClassifyError turns a database driver error into a classified failure.
// It reports false for errors it does not recognise so the next classifier
// can try.
func ClassifyError(err error) (*shared.Error, bool) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errKeyNotFound, true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fromSQLState(pgErr.Code)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fromSQLState(string(pqErr.Code))
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return fromSQLite(liteErr)
	}
	return nil, false
}

func fromSQLState(code string) (*shared.Error, bool) {
	if e, ok := sqlStateErrors[code]; ok {
		return e, true
	}
	return nil, false
}

func fromSQLite(err sqlite3.Error) (*shared.Error, bool) {
	switch err.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return sqlStateErrors["23505"], true
	case sqlite3.ErrConstraintForeignKey:
		return sqlStateErrors["23503"], true
	case sqlite3.ErrConstraintCheck:
		return sqlStateErrors["23514"], true
	case sqlite3.ErrConstraintNotNull:
		return sqlStateErrors["23502"], true
	}
	return nil, false
}
