// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

type Config struct {
	DefaultPlan        types.Plan
	TrialPeriod        time.Duration
	InvitationLifetime string

	SyncInitialDelay time.Duration
	SyncRetryDelay   time.Duration
	// SyncMaxAttempts counts every write and re-read round, the first included.
	SyncMaxAttempts int

	Sleeper Sleeper
	Now     func() time.Time
}

// ActiveGarage is the garage a user currently operates in.
type ActiveGarage struct {
	Garage *types.Garage `json:"garage"`
	Role   types.Role    `json:"role"`
	Synced bool          `json:"synced"`
}

type Invitation struct {
	Membership *types.Membership `json:"membership"`
	Link       string            `json:"link"`
	Code       string            `json:"code"`
}

type timerSleeper struct{}

func (timerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

type Service struct {
	storage    StorageInterface
	cache      UserCacheInterface
	identities IdentityInterface
	authz      AuthorizerInterface

	cfg     Config
	flights singleflight.Group

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// effectiveGarage returns the garage and role a permission decision is made against:
// the profile cache when it holds both, otherwise a fresh resolution.
func (s *Service) effectiveGarage(ctx context.Context, user *types.User) (string, types.Role, error) {
	if user == nil || user.ID == "" {
		return "", "", ErrIdentityMissing
	}

	if user.Profile.ActiveGarageID != "" && user.Profile.ActiveGarageRole != "" {
		return user.Profile.ActiveGarageID, user.Profile.ActiveGarageRole, nil
	}

	garageID, role, err := s.resolve(ctx, user)
	if err != nil {
		return "", "", err
	}

	if role != "" {
		return garageID, role, nil
	}

	m, err := s.activeMembership(ctx, user, garageID)
	if err != nil {
		return "", "", err
	}

	if m != nil {
		role = m.Role
	}

	return garageID, role, nil
}

// lookupEffectiveGarage is effectiveGarage without side effects: an empty cache is answered
// from the stores without writing it back, and a user without a garage is not provisioned one.
func (s *Service) lookupEffectiveGarage(ctx context.Context, user *types.User) (string, types.Role, error) {
	if user == nil || user.ID == "" {
		return "", "", ErrIdentityMissing
	}

	garageID, role := user.Profile.ActiveGarageID, user.Profile.ActiveGarageRole

	if garageID == "" {
		res, err := s.lookup(ctx, *user)
		if err != nil {
			return "", "", err
		}

		if res == nil {
			return "", "", ErrGarageNotFound
		}

		garageID, role = res.garageID, res.role
	}

	if role != "" {
		return garageID, role, nil
	}

	m, err := s.activeMembership(ctx, user, garageID)
	if err != nil {
		return "", "", err
	}

	if m != nil {
		role = m.Role
	}

	return garageID, role, nil
}

// activeMembership finds the user's active membership in a garage by email, then by id.
// Nil without error means there is none.
func (s *Service) activeMembership(ctx context.Context, user *types.User, garageID string) (*types.Membership, error) {
	filters := make([]types.MembershipFilter, 0, 2)

	if user.Email != "" {
		filters = append(filters, types.MembershipFilter{GarageID: garageID, UserEmail: user.Email, Active: types.BoolPtr(true)})
	}
	filters = append(filters, types.MembershipFilter{GarageID: garageID, UserID: user.ID, Active: types.BoolPtr(true)})

	for _, f := range filters {
		ms, err := s.storage.FilterMemberships(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("failed to look up membership: %w", err)
		}

		if len(ms) > 0 {
			return ms[0], nil
		}
	}

	return nil, nil
}

// authorize asks the authorizer using the role stored for the actor, not the cached one.
func (s *Service) authorize(ctx context.Context, op string, actor *types.User, garageID string, effective types.Role, permission string) error {
	stored, err := s.activeMembership(ctx, actor, garageID)
	if err != nil {
		return err
	}

	if stored == nil {
		s.logger.Security().AuthzFailure(actor.ID, "garage:"+garageID, "no active membership")
		return &PermissionError{Op: op, EffectiveRole: string(effective), Err: fmt.Errorf("no active membership in garage %s", garageID)}
	}

	allowed, err := s.authz.CheckGarageAction(ctx, garageID, actor.ID, stored.Role, permission)
	if err != nil {
		return fmt.Errorf("failed to check permission %s: %w", permission, err)
	}

	if !allowed {
		s.logger.Security().AuthzFailure(actor.ID, "garage:"+garageID, permission)

		return &PermissionError{
			Op:            op,
			EffectiveRole: string(effective),
			Err:           fmt.Errorf("stored role %q lacks %s", stored.Role, permission),
		}
	}

	return nil
}

func NewService(
	storage StorageInterface,
	cache UserCacheInterface,
	identities IdentityInterface,
	authz AuthorizerInterface,
	cfg Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	if cfg.Sleeper == nil {
		cfg.Sleeper = timerSleeper{}
	}

	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	if cfg.DefaultPlan == "" {
		cfg.DefaultPlan = types.PlanStarter
	}

	if cfg.SyncMaxAttempts < 1 {
		cfg.SyncMaxAttempts = 1
	}

	s.storage = storage
	s.cache = cache
	s.identities = identities
	s.authz = authz
	s.cfg = cfg

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
