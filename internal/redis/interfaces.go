// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package redis

import (
	"context"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

// UserSourceInterface supplies identity data the profile store does not own.
type UserSourceInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
}
