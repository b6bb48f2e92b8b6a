package errors

// Postgres error classification. Repos funnel every driver error
// through FromPostgres so SQLSTATE details never leak past this file

import (
	stderrs "errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values with a portal-specific classification
const (
	sqlstateUniqueViolation     = "23505"
	sqlstateForeignKeyViolation = "23503"
	sqlstateNotNullViolation    = "23502"
	sqlstateCheckViolation      = "23514"
	sqlstateStringTooLong       = "22001"
	sqlstateInvalidText         = "22P02"
	sqlstateSerializationFail   = "40001"
	sqlstateDeadlock            = "40P01"
	sqlstateLockUnavailable     = "55P03"
	sqlstateReadOnlyTx          = "25006"
	sqlstateCannotConnectNow    = "57P03"
)

// codeForSQLState classifies a structured Postgres error
func codeForSQLState(state string) ErrorCode {
	switch state {
	case sqlstateUniqueViolation:
		return ErrorCodeDuplicateKey
	case sqlstateForeignKeyViolation:
		// the input referenced a row that is not there
		return ErrorCodeInvalidArgument
	case sqlstateNotNullViolation, sqlstateCheckViolation:
		return ErrorCodeValidation
	case sqlstateStringTooLong, sqlstateInvalidText:
		return ErrorCodeInvalidArgument
	case sqlstateReadOnlyTx, sqlstateCannotConnectNow:
		return ErrorCodeUnavailable
	case sqlstateSerializationFail, sqlstateDeadlock, sqlstateLockUnavailable:
		return ErrorCodeDB
	default:
		return ErrorCodeDB
	}
}

// FromPostgres wraps a database error with its classification.
// A nil err stays nil so it can wrap return statements directly
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if stderrs.As(err, &pgErr) {
		return Wrapf(err, codeForSQLState(pgErr.Code), "%s", msg)
	}
	return Wrapf(err, ErrorCodeDB, "%s", msg)
}

// FromPostgresf is FromPostgres with a formatted message
func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}
