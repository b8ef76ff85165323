// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

// Claims added to issued tokens by the token hook.
const (
	GarageIDClaim   = "garage_id"
	GarageRoleClaim = "garage_role"
)

// Principal is the authenticated caller. The garage fields are the hint carried by the
// token, they are empty for header authenticated requests.
type Principal struct {
	Subject    string
	GarageID   string
	GarageRole types.Role
}

// Hint returns the garage claims as a profile cache value, or false when the token had none.
func (p *Principal) Hint() (types.ProfileCache, bool) {
	if p == nil || p.GarageID == "" || !p.GarageRole.Valid() {
		return types.ProfileCache{}, false
	}

	return types.ProfileCache{ActiveGarageID: p.GarageID, ActiveGarageRole: p.GarageRole}, true
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored by the middleware, false when there is none
// or it has no subject.
func PrincipalFrom(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	if !ok || p == nil || p.Subject == "" {
		return nil, false
	}

	return p, true
}
