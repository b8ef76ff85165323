// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/db"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

var (
	garageColumns     = []string{"id", "owner_id", "name", "plan", "trial_ends_at", "created_at"}
	membershipColumns = []string{"id", "garage_id", "user_id", "user_email", "user_name", "role", "active", "created_at", "updated_at"}
)

type scanner interface {
	Scan(dest ...any) error
}

func scanGarage(row scanner) (*types.Garage, error) {
	g := new(types.Garage)
	if err := row.Scan(&g.ID, &g.OwnerID, &g.Name, &g.Plan, &g.TrialEndsAt, &g.CreatedAt); err != nil {
		return nil, err
	}
	return g, nil
}

func scanMembership(row scanner) (*types.Membership, error) {
	m := new(types.Membership)
	if err := row.Scan(&m.ID, &m.GarageID, &m.UserID, &m.UserEmail, &m.UserName, &m.Role, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

// FilterMemberships returns memberships matching every non-empty filter field, oldest first.
func (s *Storage) FilterMemberships(ctx context.Context, filter types.MembershipFilter) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.FilterMemberships")
	defer span.End()

	where := sq.Eq{}
	if filter.GarageID != "" {
		where["garage_id"] = filter.GarageID
	}
	if filter.UserID != "" {
		where["user_id"] = filter.UserID
	}
	if filter.UserEmail != "" {
		where["user_email"] = types.NormalizeEmail(filter.UserEmail)
	}
	if filter.Active != nil {
		where["active"] = *filter.Active
	}

	rows, err := s.db.Statement(ctx).
		Select(membershipColumns...).
		From("memberships").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, wrapError(err, "failed to filter memberships")
	}
	defer rows.Close()

	memberships := make([]*types.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return memberships, nil
}

func (s *Storage) GetMembership(ctx context.Context, id string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetMembership")
	defer span.End()

	m, err := scanMembership(
		s.db.Statement(ctx).
			Select(membershipColumns...).
			From("memberships").
			Where(sq.Eq{"id": id}).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapError(err, "failed to get membership")
	}

	return m, nil
}

func (s *Storage) CreateMembership(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.CreateMembership")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	created, err := scanMembership(
		s.db.Statement(ctx).
			Insert("memberships").
			Columns("id", "garage_id", "user_id", "user_email", "user_name", "role", "active").
			Values(id.String(), m.GarageID, m.UserID, types.NormalizeEmail(m.UserEmail), m.UserName, m.Role, true).
			Suffix("RETURNING "+strings.Join(membershipColumns, ", ")).
			QueryRowContext(ctx),
	)
	if err != nil {
		return nil, wrapError(err, "failed to insert membership")
	}

	return created, nil
}

// UpdateMembership applies the non-nil patch fields and bumps updated_at.
// An empty patch returns the current row untouched.
func (s *Storage) UpdateMembership(ctx context.Context, id string, patch types.MembershipPatch) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.UpdateMembership")
	defer span.End()

	set := make(map[string]interface{})
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.Active != nil {
		set["active"] = *patch.Active
	}

	if len(set) == 0 {
		return s.GetMembership(ctx, id)
	}

	set["updated_at"] = sq.Expr("now()")

	m, err := scanMembership(
		s.db.Statement(ctx).
			Update("memberships").
			SetMap(set).
			Where(sq.Eq{"id": id}).
			Suffix("RETURNING "+strings.Join(membershipColumns, ", ")).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapError(err, "failed to update membership")
	}

	return m, nil
}

// FilterGarages returns garages matching the filter, oldest first.
func (s *Storage) FilterGarages(ctx context.Context, filter types.GarageFilter) ([]*types.Garage, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.FilterGarages")
	defer span.End()

	where := sq.Eq{}
	if filter.ID != "" {
		where["id"] = filter.ID
	}
	if filter.OwnerID != "" {
		where["owner_id"] = filter.OwnerID
	}

	rows, err := s.db.Statement(ctx).
		Select(garageColumns...).
		From("garages").
		Where(where).
		OrderBy("created_at ASC", "id ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, wrapError(err, "failed to filter garages")
	}
	defer rows.Close()

	garages := make([]*types.Garage, 0)
	for rows.Next() {
		g, err := scanGarage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan garage: %w", err)
		}
		garages = append(garages, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return garages, nil
}

func (s *Storage) GetGarage(ctx context.Context, id string) (*types.Garage, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.GetGarage")
	defer span.End()

	g, err := scanGarage(
		s.db.Statement(ctx).
			Select(garageColumns...).
			From("garages").
			Where(sq.Eq{"id": id}).
			QueryRowContext(ctx),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, wrapError(err, "failed to get garage")
	}

	return g, nil
}

// ProvisionGarage inserts a garage and its owner membership in one transaction.
// A second garage for the same owner fails with ErrDuplicateKey and nothing is written.
func (s *Storage) ProvisionGarage(ctx context.Context, g *types.Garage, owner *types.Membership) (*types.Garage, *types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.Storage.ProvisionGarage")
	defer span.End()

	garageID, err := uuid.NewV7()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate garage ID: %w", err)
	}

	var (
		garage     *types.Garage
		membership *types.Membership
	)

	err = s.db.WithTx(ctx, func(txCtx context.Context) error {
		var err error

		garage, err = scanGarage(
			s.db.Statement(txCtx).
				Insert("garages").
				Columns("id", "owner_id", "name", "plan", "trial_ends_at").
				Values(garageID.String(), g.OwnerID, g.Name, g.Plan, g.TrialEndsAt).
				Suffix("RETURNING "+strings.Join(garageColumns, ", ")).
				QueryRowContext(txCtx),
		)
		if err != nil {
			return wrapError(err, "failed to insert garage")
		}

		m := *owner
		m.GarageID = garage.ID
		m.UserID = g.OwnerID
		m.Role = types.RoleOwner

		membership, err = s.CreateMembership(txCtx, &m)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.Debugf("provisioned garage %s for owner %s", garage.ID, garage.OwnerID)

	return garage, membership, nil
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}
