// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"context"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

// EnsureCacheSynced writes (garageID, role) into the profile cache and waits until a
// re-read observes it, within SyncMaxAttempts rounds. Divergence after the last round
// is logged and reported as false, the in-memory profile keeps the intended value.
// Only context cancellation is returned as an error.
func (s *Service) EnsureCacheSynced(ctx context.Context, user *types.User, garageID string, role types.Role) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "garage.Service.EnsureCacheSynced")
	defer span.End()

	if user == nil || user.ID == "" {
		return false, ErrIdentityMissing
	}

	want := types.ProfileCache{ActiveGarageID: garageID, ActiveGarageRole: role}
	user.Profile = want

	delay := s.cfg.SyncInitialDelay

	for attempt := 1; attempt <= s.cfg.SyncMaxAttempts; attempt++ {
		if err := s.cache.UpdateProfile(ctx, user.ID, want); err != nil {
			s.logger.Warnf("profile cache write %d for user %s failed: %v", attempt, user.ID, err)
		}

		if err := s.cfg.Sleeper.Sleep(ctx, delay); err != nil {
			return false, err
		}

		current, err := s.cache.GetUser(ctx, user.ID)
		if err != nil {
			s.logger.Warnf("profile cache read %d for user %s failed: %v", attempt, user.ID, err)
		} else if current.Profile.Matches(garageID, role) {
			s.observeSync("converged", attempt)
			return true, nil
		}

		delay = s.cfg.SyncRetryDelay
	}

	s.observeSync("timeout", s.cfg.SyncMaxAttempts)
	s.logger.Warnw(
		"ConvergenceTimeout",
		"user", user.ID,
		"garage", garageID,
		"role", role,
		"attempts", s.cfg.SyncMaxAttempts,
	)

	return false, nil
}

func (s *Service) observeSync(outcome string, attempts int) {
	if err := s.monitor.SetCacheSyncMetric(map[string]string{"outcome": outcome}, float64(attempts)); err != nil {
		s.logger.Debugf("error when setting cache sync metric: %s", err)
	}
}
