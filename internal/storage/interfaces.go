// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

type StorageInterface interface {
	FilterMemberships(ctx context.Context, filter types.MembershipFilter) ([]*types.Membership, error)
	GetMembership(ctx context.Context, id string) (*types.Membership, error)
	CreateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error)
	UpdateMembership(ctx context.Context, id string, patch types.MembershipPatch) (*types.Membership, error)
	FilterGarages(ctx context.Context, filter types.GarageFilter) ([]*types.Garage, error)
	GetGarage(ctx context.Context, id string) (*types.Garage, error)
	ProvisionGarage(ctx context.Context, g *types.Garage, owner *types.Membership) (*types.Garage, *types.Membership, error)
}
