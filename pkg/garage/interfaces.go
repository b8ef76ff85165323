// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"context"
	"time"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

type ServiceInterface interface {
	ResolveActiveGarage(ctx context.Context, user *types.User) (string, error)
	EnsureCacheSynced(ctx context.Context, user *types.User, garageID string, role types.Role) (bool, error)
	Promote(ctx context.Context, actor *types.User, membershipID string) (*types.Membership, error)
	Demote(ctx context.Context, actor *types.User, membershipID string) (*types.Membership, error)
	Remove(ctx context.Context, actor *types.User, membershipID string) (*types.Membership, error)
	ListMembers(ctx context.Context, actor *types.User) ([]*types.Membership, error)
	InviteMember(ctx context.Context, actor *types.User, email, name string, role types.Role) (*Invitation, error)
	SelectGarage(ctx context.Context, user *types.User, garageID string) (*ActiveGarage, error)
	CurrentGarage(ctx context.Context, user *types.User) (*ActiveGarage, error)
}

// StorageInterface is the subset of internal/storage the garage service relies on.
type StorageInterface interface {
	FilterMemberships(ctx context.Context, filter types.MembershipFilter) ([]*types.Membership, error)
	GetMembership(ctx context.Context, id string) (*types.Membership, error)
	CreateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error)
	UpdateMembership(ctx context.Context, id string, patch types.MembershipPatch) (*types.Membership, error)
	FilterGarages(ctx context.Context, filter types.GarageFilter) ([]*types.Garage, error)
	GetGarage(ctx context.Context, id string) (*types.Garage, error)
	ProvisionGarage(ctx context.Context, g *types.Garage, owner *types.Membership) (*types.Garage, *types.Membership, error)
}

// UserCacheInterface reads identities and writes the profile cache, backed by kratos or redis.
type UserCacheInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
	UpdateProfile(ctx context.Context, id string, profile types.ProfileCache) error
}

type IdentityInterface interface {
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email, name string) (string, error)
	CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error)
}

type AuthorizerInterface interface {
	CheckGarageAction(ctx context.Context, garageID, userID string, role types.Role, permission string) (bool, error)
	AssignGarageRole(ctx context.Context, garageID, userID string, role types.Role) error
	ReplaceGarageRole(ctx context.Context, garageID, userID string, from, to types.Role) error
	RevokeGarageAccess(ctx context.Context, garageID, userID string) error
}

// Sleeper waits for d or until ctx is done, whichever comes first.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}
