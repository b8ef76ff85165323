// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/authorization"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/storage"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

type roleMutation struct {
	op         string
	guard      func(actorRole types.Role, target *types.Membership) error
	permission func(target *types.Membership) string
	patch      types.MembershipPatch
	// tuples mirrors the change into the authorization store
	tuples func(ctx context.Context, authz AuthorizerInterface, before, after *types.Membership) error
}

var promotion = roleMutation{
	op: "promote",
	guard: func(actorRole types.Role, target *types.Membership) error {
		if actorRole != types.RoleOwner {
			return newForbiddenError("promote", "only the garage owner can promote members")
		}
		if target.Role == types.RoleAdmin {
			return newGuardError("promote", "member is already an admin")
		}
		return nil
	},
	permission: func(*types.Membership) string { return authorization.CAN_MANAGE_ROLES_PERMISSION },
	patch:      types.MembershipPatch{Role: types.RolePtr(types.RoleAdmin)},
	tuples:     replaceRole,
}

var demotion = roleMutation{
	op: "demote",
	guard: func(actorRole types.Role, target *types.Membership) error {
		if actorRole != types.RoleOwner {
			return newForbiddenError("demote", "only the garage owner can demote members")
		}
		if target.Role != types.RoleAdmin {
			return newGuardError("demote", "member is not an admin")
		}
		return nil
	},
	permission: func(*types.Membership) string { return authorization.CAN_MANAGE_ROLES_PERMISSION },
	patch:      types.MembershipPatch{Role: types.RolePtr(types.RoleStaff)},
	tuples:     replaceRole,
}

var removal = roleMutation{
	op: "remove",
	guard: func(actorRole types.Role, target *types.Membership) error {
		if actorRole != types.RoleOwner && actorRole != types.RoleAdmin {
			return newForbiddenError("remove", "only owners and admins can remove members")
		}
		if actorRole == types.RoleAdmin && target.Role == types.RoleAdmin {
			return newForbiddenError("remove", "admins cannot remove other admins")
		}
		return nil
	},
	permission: func(target *types.Membership) string { return authorization.RemovePermission(target.Role) },
	patch:      types.MembershipPatch{Active: types.BoolPtr(false)},
	tuples: func(ctx context.Context, authz AuthorizerInterface, before, _ *types.Membership) error {
		return authz.RevokeGarageAccess(ctx, before.GarageID, before.UserID)
	},
}

func replaceRole(ctx context.Context, authz AuthorizerInterface, before, after *types.Membership) error {
	return authz.ReplaceGarageRole(ctx, before.GarageID, before.UserID, before.Role, after.Role)
}

// Promote turns a staff membership into an admin one.
func (s *Service) Promote(ctx context.Context, actor *types.User, membershipID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.Promote")
	defer span.End()

	return s.mutate(ctx, actor, membershipID, promotion)
}

// Demote turns an admin membership back into a staff one.
func (s *Service) Demote(ctx context.Context, actor *types.User, membershipID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.Demote")
	defer span.End()

	return s.mutate(ctx, actor, membershipID, demotion)
}

// Remove deactivates a membership, the row itself is kept.
func (s *Service) Remove(ctx context.Context, actor *types.User, membershipID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.Remove")
	defer span.End()

	return s.mutate(ctx, actor, membershipID, removal)
}

func (s *Service) mutate(ctx context.Context, actor *types.User, membershipID string, m roleMutation) (*types.Membership, error) {
	// read only until every guard has passed
	garageID, role, err := s.lookupEffectiveGarage(ctx, actor)
	if err != nil {
		return nil, err
	}

	target, err := s.storage.GetMembership(ctx, membershipID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrMembershipNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get membership %s: %w", membershipID, err)
	}

	if target.GarageID != garageID {
		return nil, ErrMembershipNotFound
	}

	if err := checkTarget(m.op, actor, target); err != nil {
		return nil, err
	}

	if err := m.guard(role, target); err != nil {
		return nil, err
	}

	// a divergent cache is tolerated, only cancellation stops the mutation
	if _, err := s.EnsureCacheSynced(ctx, actor, garageID, role); err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, m.op, actor, garageID, role, m.permission(target)); err != nil {
		return nil, err
	}

	updated, err := s.storage.UpdateMembership(ctx, target.ID, m.patch)

	switch {
	case errors.Is(err, storage.ErrPermissionDenied):
		s.logger.Security().AuthzFailure(actor.ID, "membership:"+target.ID, m.op)
		return nil, &PermissionError{Op: m.op, EffectiveRole: string(role), Err: err}
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrMembershipNotFound
	case err != nil:
		return nil, fmt.Errorf("failed to %s membership %s: %w", m.op, target.ID, err)
	}

	if target.UserID != "" {
		if err := m.tuples(ctx, s.authz, target, updated); err != nil {
			s.logger.Errorf("failed to update authorization tuples for membership %s: %v", target.ID, err)
		}

		s.refreshMemberProfile(ctx, target, updated)
	}

	s.logger.Security().AdminAction(actor.ID, m.op, "membership:"+target.ID)

	return updated, nil
}

// checkTarget holds the guards shared by every role mutation, in evaluation order.
func checkTarget(op string, actor *types.User, target *types.Membership) error {
	if actor.SameEmail(target.UserEmail) || (target.UserID != "" && target.UserID == actor.ID) {
		return newGuardError(op, "you cannot change your own membership")
	}

	if target.Role == types.RoleOwner {
		return newGuardError(op, "the garage owner's membership cannot be changed")
	}

	if !target.Active {
		return newGuardError(op, "member has already been removed")
	}

	return nil
}

// refreshMemberProfile points the target's profile hint at the updated membership, or clears
// it once the membership is gone. Hints for other garages are left alone.
func (s *Service) refreshMemberProfile(ctx context.Context, before, after *types.Membership) {
	member, err := s.cache.GetUser(ctx, before.UserID)
	if err != nil {
		s.logger.Warnf("failed to read profile of user %s: %v", before.UserID, err)
		return
	}

	if member.Profile.ActiveGarageID != before.GarageID {
		return
	}

	var profile types.ProfileCache
	if after.Active {
		profile = types.ProfileCache{ActiveGarageID: after.GarageID, ActiveGarageRole: after.Role}
	}

	if member.Profile == profile {
		return
	}

	if err := s.cache.UpdateProfile(ctx, before.UserID, profile); err != nil {
		s.logger.Warnf("failed to update profile of user %s: %v", before.UserID, err)
	}
}
