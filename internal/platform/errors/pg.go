package errors

// Maps pgx errors onto project ErrorCodes, pulls field names out of
// constraint metadata, and decides retry semantics for tx helpers

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE values with a better classification than the ErrorCodeDB default
var sqlstateCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey, // unique_violation

	// input referenced a missing row or does not fit the column
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation

	"23502": ErrorCodeValidation, // not_null_violation
	"23514": ErrorCodeValidation, // check_violation

	"25006": ErrorCodeUnavailable, // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable, // cannot_connect_now (startup in progress)
}

// server-side contention worth retrying
var retryableSQLStates = map[string]bool{
	"40001": true, // serialization_failure
	"40P01": true, // deadlock_detected
	"55P03": true, // lock_not_available
}

// pgx sometimes reports transient conditions as bare text rather than a
// structured PgError, notably on commit
var retryableSnippets = []string{
	"commit unexpectedly resulted in rollback",
	"deadlock detected",
	"could not serialize access",
	"serialization failure",
	"canceling statement due to statement timeout",
	"canceling statement due to lock timeout",
	"could not obtain lock on row",
	"terminating connection due to administrator command",
}

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}
	if code, ok := sqlstateCodes[pgErr.Code]; ok {
		return code, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message.
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresf is the formatted variant of FromPostgres
func FromPostgresf(err error, format string, a ...any) error {
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// AttachFieldFromPg tries to enrich an error with a field name derived from
// PgError metadata. Priority: ColumnName, then the last token of
// ConstraintName (files_log_file_id_key resolves to file_id only when the
// column is absent). Returns the original error if no field can be inferred
func AttachFieldFromPg(err error) error {
	var pgErr *pgconn.PgError
	if !stderrs.As(Root(err), &pgErr) {
		return err
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(err, col)
	}
	c := strings.TrimSpace(pgErr.ConstraintName)
	if c == "" {
		return err
	}
	tok := c
	if i := strings.LastIndex(c, "_"); i >= 0 && i+1 < len(c) {
		tok = c[i+1:]
	}
	if tok == "" || tok == "key" {
		return err
	}
	return WithField(err, tok)
}

// FromPostgresWithField wraps the error (like FromPostgres) and then attempts
// to attach a field name if discoverable from the PgError metadata
func FromPostgresWithField(err error, msg string) error {
	return AttachFieldFromPg(FromPostgres(err, msg))
}

// IsRetryable reports whether a database error represents a transient
// condition worth retrying
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	// local cancellations and timeouts are the caller's concern
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}

	root := Root(err)

	var pgErr *pgconn.PgError
	if stderrs.As(root, &pgErr) {
		return retryableSQLStates[pgErr.Code]
	}

	s := strings.ToLower(root.Error())
	for _, snip := range retryableSnippets {
		if strings.Contains(s, snip) {
			return true
		}
	}
	return false
}
