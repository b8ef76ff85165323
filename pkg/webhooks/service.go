// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/kratos"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

type Service struct {
	garages GarageInterface
	users   UserCacheInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	garages GarageInterface,
	users UserCacheInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		garages: garages,
		users:   users,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HandleRegistration provisions the garage of a freshly registered identity.
// Resolution is idempotent, a retried webhook does not create a second garage.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email string) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	s.logger.Debugf("Handling registration for identity %s with email %s", identityID, email)

	if identityID == "" || email == "" {
		return fmt.Errorf("identity ID or email is empty")
	}

	user, err := s.users.GetUser(ctx, identityID)
	if err != nil {
		// the payload carries enough to provision, the display name is only cosmetic
		s.logger.Warnf("failed to load identity %s, using webhook payload: %v", identityID, err)
		user = &types.User{ID: identityID}
	}

	if user.Email == "" {
		user.Email = types.NormalizeEmail(email)
	}

	garageID, err := s.garages.ResolveActiveGarage(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to provision garage: %w", err)
	}

	s.logger.Infof("Successfully provisioned garage %s for user %s", garageID, identityID)
	return nil
}

// HandleTokenHook adds the active garage and the role held in it to the issued tokens.
// Subjects that are not identities, such as client credentials, get no claims.
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleTokenHook")
	defer span.End()

	if req == nil || req.Session == nil || req.Session.DefaultSession == nil || req.Session.DefaultSession.Subject == "" {
		return nil, fmt.Errorf("session subject is empty")
	}

	subject := req.Session.DefaultSession.Subject
	s.logger.Debugf("Handling token hook for subject %s", subject)

	resp := new(TokenHookResponse)

	user, err := s.users.GetUser(ctx, subject)
	if errors.Is(err, kratos.ErrIdentityNotFound) {
		return resp, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load identity %s: %w", subject, err)
	}

	active, err := s.garages.CurrentGarage(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve garage: %w", err)
	}

	// the role comes from the membership store, no role means no active membership
	if active.Role == "" {
		s.logger.Debugf("No active membership for subject %s in garage %s", subject, active.Garage.ID)
		return resp, nil
	}

	claims := map[string]interface{}{
		GarageIDClaim:   active.Garage.ID,
		GarageRoleClaim: string(active.Role),
	}

	resp.Session.IDToken = claims
	resp.Session.AccessToken = claims

	return resp, nil
}
