// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

type TokenVerifierInterface interface {
	// VerifyToken checks the signature and access policy of a raw JWT and returns its principal.
	VerifyToken(ctx context.Context, rawToken string) (*Principal, error)
}
