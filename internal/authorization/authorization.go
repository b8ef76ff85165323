// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"fmt"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/openfga"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

var ErrInvalidAuthModel = fmt.Errorf("invalid authorization model schema")

var _ AuthorizerInterface = (*Authorizer)(nil)

type Authorizer struct {
	client AuthzClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *Authorizer) Check(ctx context.Context, user string, relation string, object string, contextualTuples ...openfga.Tuple) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.Check")
	defer span.End()

	return a.client.Check(ctx, user, relation, object, contextualTuples...)
}

func (a *Authorizer) ListObjects(ctx context.Context, user string, relation string, objectType string) ([]string, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ListObjects")
	defer span.End()

	return a.client.ListObjects(ctx, user, relation, objectType)
}

func (a *Authorizer) ValidateModel(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ValidateModel")
	defer span.End()

	v0AuthzModel := NewAuthorizationModelProvider("v0")
	model := *v0AuthzModel.GetModel()

	eq, err := a.client.CompareModel(ctx, model)
	if err != nil {
		return err
	}
	if !eq {
		return ErrInvalidAuthModel
	}
	return nil
}

// CheckGarageAction denies locally when role cannot hold permission, otherwise asks openfga
// with the stored role as a contextual tuple.
func (a *Authorizer) CheckGarageAction(ctx context.Context, garageID, userID string, role types.Role, permission string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckGarageAction")
	defer span.End()

	if !RoleAllows(role, permission) {
		return false, nil
	}

	return a.Check(
		ctx,
		UserTuple(userID),
		permission,
		GarageTuple(garageID),
		*openfga.NewTuple(UserTuple(userID), string(role), GarageTuple(garageID)),
	)
}

func (a *Authorizer) AssignGarageRole(ctx context.Context, garageID, userID string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignGarageRole")
	defer span.End()

	return a.client.WriteTuple(ctx, UserTuple(userID), string(role), GarageTuple(garageID))
}

// ReplaceGarageRole writes the new relation before dropping the old one so the user
// never loses access in between.
func (a *Authorizer) ReplaceGarageRole(ctx context.Context, garageID, userID string, from, to types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ReplaceGarageRole")
	defer span.End()

	if from == to {
		return nil
	}

	if err := a.client.WriteTuple(ctx, UserTuple(userID), string(to), GarageTuple(garageID)); err != nil {
		return err
	}

	return a.client.DeleteTuple(ctx, UserTuple(userID), string(from), GarageTuple(garageID))
}

// RevokeGarageAccess deletes every tuple binding the user to the garage.
func (a *Authorizer) RevokeGarageAccess(ctx context.Context, garageID, userID string) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RevokeGarageAccess")
	defer span.End()

	cToken := ""
	for {
		r, err := a.client.ReadTuples(ctx, UserTuple(userID), "", GarageTuple(garageID), cToken)
		if err != nil {
			a.logger.Errorf("error when retrieving tuples: %s", err)
			return err
		}
		if len(r.Tuples) == 0 {
			break
		}
		ts := make([]openfga.Tuple, len(r.Tuples))
		for i, t := range r.Tuples {
			ts[i] = *openfga.NewTuple(t.Key.User, t.Key.Relation, t.Key.Object)
		}
		if err := a.client.DeleteTuples(ctx, ts...); err != nil {
			a.logger.Errorf("error when deleting tuples %v: %s", ts, err)
			return err
		}
		if r.ContinuationToken == "" {
			break
		}
		cToken = r.ContinuationToken
	}
	return nil
}

func NewAuthorizer(client AuthzClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)
	authorizer.client = client
	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
