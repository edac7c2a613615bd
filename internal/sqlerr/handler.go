package sqlerr

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"

	"github.com/deppfellow/bookshelf/internal/errs"
)

// ErrCode reports the Code of the first *Error in err's chain, Other if none.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError parses a raw Postgres error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// HandleError converts a store error into the error the API returns.
//
//   - *errs.HTTPError is returned unchanged.
//   - "no rows" from any driver becomes a book-not-found error.
//   - Anything else is a store error whose message is the driver message.
//     Postgres errors are parsed first so the HTTPError keeps an *Error in
//     its chain.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows), errors.Is(err, redis.Nil):
		return errs.NewBookNotFoundError()
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return errs.NewStoreError(ConvertPgError(pgerr))
	}

	return errs.NewStoreError(err)
}
