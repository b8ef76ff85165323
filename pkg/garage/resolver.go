// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/storage"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

const defaultGarageName = "My Garage"

type resolution struct {
	garageID string
	role     types.Role
	cached   bool
}

// ResolveActiveGarage returns the garage the user operates in, provisioning one with an
// owner membership the first time a user has neither.
func (s *Service) ResolveActiveGarage(ctx context.Context, user *types.User) (string, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.ResolveActiveGarage")
	defer span.End()

	garageID, _, err := s.resolve(ctx, user)
	if err != nil {
		return "", err
	}

	return garageID, nil
}

func (s *Service) resolve(ctx context.Context, user *types.User) (string, types.Role, error) {
	if user == nil || user.ID == "" {
		return "", "", ErrIdentityMissing
	}

	if user.Profile.ActiveGarageID != "" {
		return user.Profile.ActiveGarageID, user.Profile.ActiveGarageRole, nil
	}

	// concurrent first resolutions for one user share a single lookup and provisioning
	u := *user
	ch := s.flights.DoChan(user.ID, func() (interface{}, error) {
		return s.lookupOrProvision(context.WithoutCancel(ctx), u)
	})

	select {
	case <-ctx.Done():
		return "", "", ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return "", "", r.Err
		}

		res := r.Val.(*resolution)
		if res.cached {
			user.Profile = types.ProfileCache{ActiveGarageID: res.garageID, ActiveGarageRole: res.role}
		}

		return res.garageID, res.role, nil
	}
}

func (s *Service) lookupOrProvision(ctx context.Context, user types.User) (*resolution, error) {
	res, err := s.lookup(ctx, user)
	if err != nil {
		return nil, err
	}

	if res == nil {
		if res, err = s.provision(ctx, user); err != nil {
			return nil, err
		}
	}

	if user.Profile.Matches(res.garageID, res.role) {
		return res, nil
	}

	profile := types.ProfileCache{ActiveGarageID: res.garageID, ActiveGarageRole: res.role}
	if err := s.cache.UpdateProfile(ctx, user.ID, profile); err != nil {
		s.logger.Warnf("failed to update profile cache of user %s: %v", user.ID, err)
		return res, nil
	}

	res.cached = true

	return res, nil
}

func (s *Service) lookup(ctx context.Context, user types.User) (*resolution, error) {
	if user.Email != "" {
		ms, err := s.storage.FilterMemberships(ctx, types.MembershipFilter{UserEmail: user.Email, Active: types.BoolPtr(true)})
		if err != nil {
			return nil, fmt.Errorf("failed to list memberships: %w", err)
		}

		if len(ms) > 0 {
			if len(ms) > 1 {
				s.logger.Debugf("user %s holds %d active memberships, using garage %s", user.ID, len(ms), ms[0].GarageID)
			}
			return &resolution{garageID: ms[0].GarageID, role: ms[0].Role}, nil
		}
	}

	gs, err := s.storage.FilterGarages(ctx, types.GarageFilter{OwnerID: user.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to list owned garages: %w", err)
	}

	if len(gs) == 0 {
		return nil, nil
	}

	res := &resolution{garageID: gs[0].ID}

	ms, err := s.storage.FilterMemberships(ctx, types.MembershipFilter{GarageID: gs[0].ID, UserID: user.ID, Active: types.BoolPtr(true)})
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	if len(ms) > 0 {
		res.role = ms[0].Role
	}

	return res, nil
}

func (s *Service) provision(ctx context.Context, user types.User) (*resolution, error) {
	g := &types.Garage{
		OwnerID:     user.ID,
		Name:        garageName(user),
		Plan:        s.cfg.DefaultPlan,
		TrialEndsAt: s.cfg.Now().Add(s.cfg.TrialPeriod),
	}

	owner := &types.Membership{
		UserID:    user.ID,
		UserEmail: user.Email,
		UserName:  user.Name,
		Role:      types.RoleOwner,
		Active:    true,
	}

	created, _, err := s.storage.ProvisionGarage(ctx, g, owner)

	if errors.Is(err, storage.ErrDuplicateKey) {
		// lost the race against another instance, use the garage it created
		gs, ferr := s.storage.FilterGarages(ctx, types.GarageFilter{OwnerID: user.ID})
		if ferr != nil {
			return nil, fmt.Errorf("failed to fetch existing garage: %w", ferr)
		}

		if len(gs) == 0 {
			return nil, fmt.Errorf("failed to provision garage: %w", err)
		}

		s.logger.Debugf("garage for user %s already provisioned as %s", user.ID, gs[0].ID)

		return &resolution{garageID: gs[0].ID, role: types.RoleOwner}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to provision garage: %w", err)
	}

	if err := s.authz.AssignGarageRole(ctx, created.ID, user.ID, types.RoleOwner); err != nil {
		s.logger.Errorf("failed to assign owner of garage %s: %v", created.ID, err)
	}

	s.logger.Infof("provisioned garage %s for user %s", created.ID, user.ID)

	return &resolution{garageID: created.ID, role: types.RoleOwner}, nil
}

func garageName(user types.User) string {
	name := strings.TrimSpace(user.Name)

	if name == "" {
		local, _, _ := strings.Cut(user.Email, "@")
		name = strings.TrimSpace(local)
	}

	if name == "" {
		return defaultGarageName
	}

	return name + "'s Garage"
}
