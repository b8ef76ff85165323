// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestWrapError(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, expected: ErrDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, expected: ErrForeignKeyViolation},
		{name: "insufficient privilege", err: &pgconn.PgError{Code: "42501"}, expected: ErrPermissionDenied},
		{name: "wrapped pg error", err: fmt.Errorf("exec: %w", &pgconn.PgError{Code: "42501"}), expected: ErrPermissionDenied},
		{name: "other error", err: plain, expected: plain},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := wrapError(test.err, "failed")
			if !errors.Is(err, test.expected) {
				t.Fatalf("expected %v to match %v", err, test.expected)
			}
		})
	}

	if wrapError(nil, "failed") != nil {
		t.Fatal("expected nil for nil error")
	}
}
