// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/openfga"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

type AuthorizerInterface interface {
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	ListObjects(context.Context, string, string, string) ([]string, error)
	ValidateModel(context.Context) error

	// CheckGarageAction evaluates permission for a user whose stored role is role.
	// The role comes from the membership table, it is sent as a contextual tuple.
	CheckGarageAction(ctx context.Context, garageID, userID string, role types.Role, permission string) (bool, error)
	AssignGarageRole(ctx context.Context, garageID, userID string, role types.Role) error
	ReplaceGarageRole(ctx context.Context, garageID, userID string, from, to types.Role) error
	RevokeGarageAccess(ctx context.Context, garageID, userID string) error
}

type AuthzClientInterface interface {
	ListObjects(context.Context, string, string, string) ([]string, error)
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	ReadModel(context.Context) (*fga.AuthorizationModel, error)
	CompareModel(context.Context, fga.AuthorizationModel) (bool, error)
	ReadTuples(context.Context, string, string, string, string) (*client.ClientReadResponse, error)
	WriteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuples(context.Context, ...openfga.Tuple) error
}
