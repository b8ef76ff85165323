// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

const (
	fieldGarageID   = "activeGarageId"
	fieldGarageRole = "activeGarageRole"

	pingTimeout = 5 * time.Second
)

// ProfileStore keeps the active garage hint in a redis hash per user and delegates
// everything else about the user to the identity source.
type ProfileStore struct {
	rdb    *redis.Client
	source UserSourceInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func profileKey(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}

// GetUser returns the identity with its profile taken from redis when a hash exists.
// A redis failure degrades to the identity's own profile.
func (s *ProfileStore) GetUser(ctx context.Context, id string) (*types.User, error) {
	ctx, span := s.tracer.Start(ctx, "redis.ProfileStore.GetUser")
	defer span.End()

	user, err := s.source.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	fields, err := s.rdb.HGetAll(ctx, profileKey(id)).Result()
	if err != nil {
		s.logger.Warnf("failed to read cached profile for %s, using identity metadata: %v", id, err)
		return user, nil
	}

	if len(fields) > 0 {
		user.Profile = types.ProfileCache{
			ActiveGarageID:   fields[fieldGarageID],
			ActiveGarageRole: types.Role(fields[fieldGarageRole]),
		}
	}

	return user, nil
}

func (s *ProfileStore) UpdateProfile(ctx context.Context, id string, profile types.ProfileCache) error {
	ctx, span := s.tracer.Start(ctx, "redis.ProfileStore.UpdateProfile")
	defer span.End()

	key := profileKey(id)

	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)

		values := make(map[string]interface{})
		if profile.ActiveGarageID != "" {
			values[fieldGarageID] = profile.ActiveGarageID
		}
		if profile.ActiveGarageRole != "" {
			values[fieldGarageRole] = string(profile.ActiveGarageRole)
		}
		if len(values) > 0 {
			pipe.HSet(ctx, key, values)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to store profile: %w", err)
	}

	return nil
}

func (s *ProfileStore) Ping(ctx context.Context) error {
	err := s.rdb.Ping(ctx).Err()

	available := 1.0
	if err != nil {
		available = 0
	}
	if mErr := s.monitor.SetDependencyAvailability(map[string]string{"component": "redis"}, available); mErr != nil {
		s.logger.Debugf("failed to set redis availability metric: %v", mErr)
	}

	return err
}

func (s *ProfileStore) Close() error {
	return s.rdb.Close()
}

// NewProfileStore connects to url and fails fast when redis is unreachable.
func NewProfileStore(url string, source UserSourceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) (*ProfileStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	s := newProfileStore(redis.NewClient(opts), source, tracer, monitor, logger)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := s.Ping(ctx); err != nil {
		_ = s.rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return s, nil
}

func newProfileStore(rdb *redis.Client, source UserSourceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *ProfileStore {
	return &ProfileStore{
		rdb:     rdb,
		source:  source,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}
