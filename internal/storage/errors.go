// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrDuplicateKey        = errors.New("duplicate key violation")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrPermissionDenied    = errors.New("permission denied by the database")
)

// PostgreSQL error codes
const (
	pgErrCodeUniqueViolation       = "23505"
	pgErrCodeForeignKeyViolation   = "23503"
	pgErrCodeInsufficientPrivilege = "42501"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation.
func IsDuplicateKeyError(err error) bool {
	return pgErrorCode(err) == pgErrCodeUniqueViolation
}

// IsForeignKeyViolation checks if the error is a PostgreSQL foreign key violation.
func IsForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgErrCodeForeignKeyViolation
}

// IsInsufficientPrivilege checks if the database refused the statement, e.g. a row level policy.
func IsInsufficientPrivilege(err error) bool {
	return pgErrorCode(err) == pgErrCodeInsufficientPrivilege
}

// wrapError maps known PostgreSQL failures onto the storage sentinels, keeping msg as context.
func wrapError(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", msg, ErrDuplicateKey)
	case IsForeignKeyViolation(err):
		return fmt.Errorf("%s: %w", msg, ErrForeignKeyViolation)
	case IsInsufficientPrivilege(err):
		return fmt.Errorf("%s: %w", msg, ErrPermissionDenied)
	default:
		return fmt.Errorf("%s: %w", msg, err)
	}
}
