// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrIdentityMissing    = errors.New("please sign in")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrGuard              = errors.New("operation not allowed")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrGarageNotFound     = errors.New("garage not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidEmail       = errors.New("invalid email")
)

// PermissionError is returned when the authoritative layer rejects an operation the
// local pre-check let through, usually a stale profile cache.
type PermissionError struct {
	Op            string
	EffectiveRole string
	Err           error
}

func (e *PermissionError) Error() string {
	role := e.EffectiveRole
	if role == "" {
		role = "none"
	}

	msg := fmt.Sprintf("%s: permission denied for effective role %q", e.Op, role)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	return msg
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}

func (e *PermissionError) Unwrap() error {
	return e.Err
}

// GuardError rejects an operation before anything is written.
type GuardError struct {
	Op     string
	Reason string

	// Forbidden marks guards about the actor's role rather than the target's state.
	Forbidden bool
}

func (e *GuardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *GuardError) Is(target error) bool {
	if target == ErrGuard {
		return true
	}
	return e.Forbidden && target == ErrPermissionDenied
}

func newGuardError(op, reason string) *GuardError {
	return &GuardError{Op: op, Reason: reason}
}

func newForbiddenError(op, reason string) *GuardError {
	return &GuardError{Op: op, Reason: reason, Forbidden: true}
}

func httpStatus(err error) int {
	var guard *GuardError

	switch {
	case errors.Is(err, ErrIdentityMissing):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidRole), errors.Is(err, ErrInvalidEmail):
		return http.StatusBadRequest
	case errors.Is(err, ErrMembershipNotFound), errors.Is(err, ErrGarageNotFound):
		return http.StatusNotFound
	case errors.As(err, &guard) && !guard.Forbidden:
		return http.StatusConflict
	case errors.Is(err, ErrPermissionDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
