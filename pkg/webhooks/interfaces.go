// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/garage"
)

// GarageInterface is the subset of the garage service the webhooks rely on.
type GarageInterface interface {
	ResolveActiveGarage(ctx context.Context, user *types.User) (string, error)
	CurrentGarage(ctx context.Context, user *types.User) (*garage.ActiveGarage, error)
}

type UserCacheInterface interface {
	GetUser(ctx context.Context, id string) (*types.User, error)
}

// ServiceInterface defines the webhook service operations.
type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email string) error
	HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error)
}
