// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/authorization"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/storage"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

// ListMembers returns the active members of the actor's garage, oldest first.
func (s *Service) ListMembers(ctx context.Context, actor *types.User) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.ListMembers")
	defer span.End()

	garageID, role, err := s.effectiveGarage(ctx, actor)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, "list members", actor, garageID, role, authorization.CAN_VIEW_PERMISSION); err != nil {
		return nil, err
	}

	members, err := s.storage.FilterMemberships(ctx, types.MembershipFilter{GarageID: garageID, Active: types.BoolPtr(true)})
	if err != nil {
		return nil, fmt.Errorf("failed to list members of garage %s: %w", garageID, err)
	}

	return members, nil
}

// InviteMember adds a non-owner membership and returns a recovery link the invitee uses
// to set up their account.
func (s *Service) InviteMember(ctx context.Context, actor *types.User, email, name string, role types.Role) (*Invitation, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.InviteMember")
	defer span.End()

	const op = "invite"

	email = types.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if role != types.RoleAdmin && role != types.RoleStaff {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}

	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}

	garageID, actorRole, err := s.lookupEffectiveGarage(ctx, actor)
	if err != nil {
		return nil, err
	}

	if actor.SameEmail(email) {
		return nil, newGuardError(op, "you are already a member of this garage")
	}

	permission := authorization.InvitePermission(role)
	if !authorization.RoleAllows(actorRole, permission) {
		if role == types.RoleAdmin {
			return nil, newForbiddenError(op, "only the garage owner can invite admins")
		}
		return nil, newForbiddenError(op, "staff members cannot invite")
	}

	existing, err := s.storage.FilterMemberships(ctx, types.MembershipFilter{GarageID: garageID, UserEmail: email, Active: types.BoolPtr(true)})
	if err != nil {
		return nil, fmt.Errorf("failed to look up membership: %w", err)
	}

	if len(existing) > 0 {
		return nil, newGuardError(op, fmt.Sprintf("%s is already a member", email))
	}

	if err := s.authorize(ctx, op, actor, garageID, actorRole, permission); err != nil {
		return nil, err
	}

	identityID, err := s.identities.GetIdentityIDByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check identity: %w", err)
	}

	if identityID == "" {
		s.logger.Infof("Creating new identity for email %s", email)

		if identityID, err = s.identities.CreateIdentity(ctx, email, name); err != nil {
			return nil, fmt.Errorf("failed to provision user: %w", err)
		}
	}

	link, code, err := s.identities.CreateRecoveryLink(ctx, identityID, s.cfg.InvitationLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to generate invitation link: %w", err)
	}

	membership, err := s.storage.CreateMembership(ctx, &types.Membership{
		GarageID:  garageID,
		UserID:    identityID,
		UserEmail: email,
		UserName:  name,
		Role:      role,
		Active:    true,
	})

	switch {
	case errors.Is(err, storage.ErrDuplicateKey):
		return nil, newGuardError(op, fmt.Sprintf("%s is already a member", email))
	case errors.Is(err, storage.ErrPermissionDenied):
		return nil, &PermissionError{Op: op, EffectiveRole: string(actorRole), Err: err}
	case err != nil:
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	if err := s.authz.AssignGarageRole(ctx, garageID, identityID, role); err != nil {
		s.logger.Errorf("failed to assign role %s in garage %s: %v", role, garageID, err)
	}

	s.logger.Security().AdminAction(actor.ID, op, "membership:"+membership.ID)

	return &Invitation{Membership: membership, Link: link, Code: code}, nil
}

// SelectGarage makes garageID the user's active garage, provided they are an active member.
func (s *Service) SelectGarage(ctx context.Context, user *types.User, garageID string) (*ActiveGarage, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.SelectGarage")
	defer span.End()

	if user == nil || user.ID == "" {
		return nil, ErrIdentityMissing
	}

	m, err := s.activeMembership(ctx, user, garageID)
	if err != nil {
		return nil, err
	}

	if m == nil {
		return nil, ErrGarageNotFound
	}

	g, err := s.getGarage(ctx, garageID)
	if err != nil {
		return nil, err
	}

	synced, err := s.EnsureCacheSynced(ctx, user, g.ID, m.Role)
	if err != nil {
		return nil, err
	}

	return &ActiveGarage{Garage: g, Role: m.Role, Synced: synced}, nil
}

// CurrentGarage returns the resolved garage and the role stored for the user in it. A cached
// garage the user no longer belongs to is dropped and the garage is resolved again.
func (s *Service) CurrentGarage(ctx context.Context, user *types.User) (*ActiveGarage, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.CurrentGarage")
	defer span.End()

	cached := user != nil && user.Profile.ActiveGarageID != ""

	garageID, _, err := s.effectiveGarage(ctx, user)
	if err != nil {
		return nil, err
	}

	m, err := s.activeMembership(ctx, user, garageID)
	if err != nil {
		return nil, err
	}

	if m == nil && cached {
		s.logger.Debugf("profile of user %s points at garage %s without an active membership", user.ID, garageID)

		user.Profile = types.ProfileCache{}

		if garageID, _, err = s.effectiveGarage(ctx, user); err != nil {
			return nil, err
		}

		if m, err = s.activeMembership(ctx, user, garageID); err != nil {
			return nil, err
		}
	}

	var role types.Role
	if m != nil {
		role = m.Role
	}

	g, err := s.getGarage(ctx, garageID)
	if err != nil {
		return nil, err
	}

	return &ActiveGarage{Garage: g, Role: role, Synced: user.Profile.Matches(garageID, role)}, nil
}

func (s *Service) getGarage(ctx context.Context, garageID string) (*types.Garage, error) {
	g, err := s.storage.GetGarage(ctx, garageID)

	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrGarageNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get garage %s: %w", garageID, err)
	}

	return g, nil
}
