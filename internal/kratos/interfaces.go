// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

type ClientInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	UpdateProfile(ctx context.Context, id string, profile types.ProfileCache) error
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email, name string) (string, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}
