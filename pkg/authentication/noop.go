// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

type NoopVerifier struct{}

func NewNoopVerifier() *NoopVerifier {
	return &NoopVerifier{}
}

// VerifyToken treats the token as the identity ID, for local development only.
func (n *NoopVerifier) VerifyToken(ctx context.Context, rawToken string) (*Principal, error) {
	return &Principal{Subject: rawToken}, nil
}
