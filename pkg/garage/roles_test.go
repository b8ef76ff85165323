// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package garage

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/authorization"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/storage"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

func ownerUser() *types.User {
	return &types.User{
		ID:      "owner-1",
		Email:   "alice@x.com",
		Profile: types.ProfileCache{ActiveGarageID: garageT1, ActiveGarageRole: types.RoleOwner},
	}
}

func adminUser() *types.User {
	return &types.User{
		ID:      "admin-1",
		Email:   "dora@x.com",
		Profile: types.ProfileCache{ActiveGarageID: garageT1, ActiveGarageRole: types.RoleAdmin},
	}
}

func staffUser() *types.User {
	return &types.User{
		ID:      "staff-1",
		Email:   "sam@x.com",
		Profile: types.ProfileCache{ActiveGarageID: garageT1, ActiveGarageRole: types.RoleStaff},
	}
}

func carol() *types.Membership {
	return membership("m-carol", garageT1, "carol", "carol@x.com", types.RoleStaff)
}

func dave() *types.Membership {
	return membership("m-dave", garageT1, "dave", "dave@x.com", types.RoleAdmin)
}

func withRole(m *types.Membership, role types.Role) *types.Membership {
	m.Role = role
	return m
}

func inactive(m *types.Membership) *types.Membership {
	m.Active = false
	return m
}

// expectMemberProfile expects the target's profile hint to be read and, when it points at
// garageT1 and differs from next, rewritten.
func expectMemberProfile(m *serviceMocks, userID string, current, next types.ProfileCache) {
	m.cache.EXPECT().GetUser(gomock.Any(), userID).Return(&types.User{ID: userID, Profile: current}, nil)

	if current.ActiveGarageID == garageT1 && current != next {
		m.cache.EXPECT().UpdateProfile(gomock.Any(), userID, next).Return(nil)
	}
}

func TestService_RoleMutations(t *testing.T) {
	promotePatch := types.MembershipPatch{Role: types.RolePtr(types.RoleAdmin)}
	demotePatch := types.MembershipPatch{Role: types.RolePtr(types.RoleStaff)}
	removePatch := types.MembershipPatch{Active: types.BoolPtr(false)}

	testCases := []struct {
		name              string
		op                string
		actor             func() *types.User
		membershipID      string
		setupMocks        func(*serviceMocks)
		expectedRole      types.Role
		expectedActive    bool
		expectedErr       error
		expectedForbidden bool
	}{
		{
			name:         "owner promotes staff",
			op:           "promote",
			actor:        ownerUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
				expectConverged(m, "owner-1", garageT1, types.RoleOwner)
				expectAuthorized(m, ownerUser(), garageT1, types.RoleOwner, authorization.CAN_MANAGE_ROLES_PERMISSION, true)
				m.storage.EXPECT().UpdateMembership(gomock.Any(), "m-carol", promotePatch).Return(withRole(carol(), types.RoleAdmin), nil)
				m.authz.EXPECT().ReplaceGarageRole(gomock.Any(), garageT1, "carol", types.RoleStaff, types.RoleAdmin).Return(nil)
				expectMemberProfile(m, "carol",
					types.ProfileCache{ActiveGarageID: garageT1, ActiveGarageRole: types.RoleStaff},
					types.ProfileCache{ActiveGarageID: garageT1, ActiveGarageRole: types.RoleAdmin})
				m.security.EXPECT().AdminAction("owner-1", "promote", "membership:m-carol")
			},
			expectedRole:   types.RoleAdmin,
			expectedActive: true,
		},
		{
			name:         "promoting an admin again is rejected",
			op:           "promote",
			actor:        ownerUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(withRole(carol(), types.RoleAdmin), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "promoting yourself is rejected",
			op:           "promote",
			actor:        staffUser,
			membershipID: "m-sam",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-sam").
					Return(membership("m-sam", garageT1, "staff-1", "SAM@x.com", types.RoleStaff), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "owner role cannot be changed",
			op:           "promote",
			actor:        adminUser,
			membershipID: "m-owner",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-owner").
					Return(membership("m-owner", garageT1, "owner-1", "alice@x.com", types.RoleOwner), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "admin cannot promote",
			op:           "promote",
			actor:        adminUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
			},
			expectedErr:       ErrGuard,
			expectedForbidden: true,
		},
		{
			name:         "removed member cannot be promoted",
			op:           "promote",
			actor:        ownerUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(inactive(carol()), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "membership of another garage is not found",
			op:           "promote",
			actor:        ownerUser,
			membershipID: "m-other",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-other").
					Return(membership("m-other", garageT2, "olga", "olga@x.com", types.RoleStaff), nil)
			},
			expectedErr: ErrMembershipNotFound,
		},
		{
			name:         "unknown membership",
			op:           "demote",
			actor:        ownerUser,
			membershipID: "m-missing",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-missing").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrMembershipNotFound,
		},
		{
			name:         "authorizer denies despite local role",
			op:           "promote",
			actor:        ownerUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
				expectConverged(m, "owner-1", garageT1, types.RoleOwner)
				expectAuthorized(m, ownerUser(), garageT1, types.RoleOwner, authorization.CAN_MANAGE_ROLES_PERMISSION, false)
				m.security.EXPECT().AuthzFailure("owner-1", "garage:"+garageT1, authorization.CAN_MANAGE_ROLES_PERMISSION)
			},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:         "database denies the update",
			op:           "promote",
			actor:        ownerUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
				expectConverged(m, "owner-1", garageT1, types.RoleOwner)
				expectAuthorized(m, ownerUser(), garageT1, types.RoleOwner, authorization.CAN_MANAGE_ROLES_PERMISSION, true)
				m.storage.EXPECT().UpdateMembership(gomock.Any(), "m-carol", promotePatch).
					Return(nil, fmt.Errorf("failed to update membership: %w", storage.ErrPermissionDenied))
				m.security.EXPECT().AuthzFailure("owner-1", "membership:m-carol", "promote")
			},
			expectedErr: ErrPermissionDenied,
		},
		{
			name:         "tuple failure does not fail the promotion",
			op:           "promote",
			actor:        ownerUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
				expectConverged(m, "owner-1", garageT1, types.RoleOwner)
				expectAuthorized(m, ownerUser(), garageT1, types.RoleOwner, authorization.CAN_MANAGE_ROLES_PERMISSION, true)
				m.storage.EXPECT().UpdateMembership(gomock.Any(), "m-carol", promotePatch).Return(withRole(carol(), types.RoleAdmin), nil)
				m.authz.EXPECT().ReplaceGarageRole(gomock.Any(), garageT1, "carol", types.RoleStaff, types.RoleAdmin).Return(errors.New("openfga down"))
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
				expectMemberProfile(m, "carol", types.ProfileCache{ActiveGarageID: garageT2, ActiveGarageRole: types.RoleOwner}, types.ProfileCache{})
				m.security.EXPECT().AdminAction("owner-1", "promote", "membership:m-carol")
			},
			expectedRole:   types.RoleAdmin,
			expectedActive: true,
		},
		{
			name:         "invitee without identity skips tuples",
			op:           "promote",
			actor:        ownerUser,
			membershipID: "m-ivy",
			setupMocks: func(m *serviceMocks) {
				ivy := membership("m-ivy", garageT1, "", "ivy@x.com", types.RoleStaff)
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-ivy").Return(ivy, nil)
				expectConverged(m, "owner-1", garageT1, types.RoleOwner)
				expectAuthorized(m, ownerUser(), garageT1, types.RoleOwner, authorization.CAN_MANAGE_ROLES_PERMISSION, true)
				m.storage.EXPECT().UpdateMembership(gomock.Any(), "m-ivy", promotePatch).
					Return(membership("m-ivy", garageT1, "", "ivy@x.com", types.RoleAdmin), nil)
				m.security.EXPECT().AdminAction("owner-1", "promote", "membership:m-ivy")
			},
			expectedRole:   types.RoleAdmin,
			expectedActive: true,
		},
		{
			name:         "effective role is resolved when the cache is empty",
			op:           "promote",
			actor:        func() *types.User { return &types.User{ID: "owner-1", Email: "alice@x.com"} },
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().FilterMemberships(gomock.Any(), types.MembershipFilter{UserEmail: "alice@x.com", Active: active()}).
					Return([]*types.Membership{membership("m-owner", garageT1, "owner-1", "alice@x.com", types.RoleOwner)}, nil)
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
				expectConverged(m, "owner-1", garageT1, types.RoleOwner)
				expectAuthorized(m, ownerUser(), garageT1, types.RoleOwner, authorization.CAN_MANAGE_ROLES_PERMISSION, true)
				m.storage.EXPECT().UpdateMembership(gomock.Any(), "m-carol", promotePatch).Return(withRole(carol(), types.RoleAdmin), nil)
				m.authz.EXPECT().ReplaceGarageRole(gomock.Any(), garageT1, "carol", types.RoleStaff, types.RoleAdmin).Return(nil)
				m.cache.EXPECT().GetUser(gomock.Any(), "carol").Return(nil, errors.New("kratos unavailable"))
				m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any())
				m.security.EXPECT().AdminAction("owner-1", "promote", "membership:m-carol")
			},
			expectedRole:   types.RoleAdmin,
			expectedActive: true,
		},
		{
			name:         "owner demotes admin",
			op:           "demote",
			actor:        ownerUser,
			membershipID: "m-dave",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-dave").Return(dave(), nil)
				expectConverged(m, "owner-1", garageT1, types.RoleOwner)
				expectAuthorized(m, ownerUser(), garageT1, types.RoleOwner, authorization.CAN_MANAGE_ROLES_PERMISSION, true)
				m.storage.EXPECT().UpdateMembership(gomock.Any(), "m-dave", demotePatch).Return(withRole(dave(), types.RoleStaff), nil)
				m.authz.EXPECT().ReplaceGarageRole(gomock.Any(), garageT1, "dave", types.RoleAdmin, types.RoleStaff).Return(nil)
				expectMemberProfile(m, "dave",
					types.ProfileCache{ActiveGarageID: garageT1, ActiveGarageRole: types.RoleAdmin},
					types.ProfileCache{ActiveGarageID: garageT1, ActiveGarageRole: types.RoleStaff})
				m.security.EXPECT().AdminAction("owner-1", "demote", "membership:m-dave")
			},
			expectedRole:   types.RoleStaff,
			expectedActive: true,
		},
		{
			name:         "demoting staff is rejected",
			op:           "demote",
			actor:        ownerUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "admin cannot demote",
			op:           "demote",
			actor:        adminUser,
			membershipID: "m-dave",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-dave").Return(dave(), nil)
			},
			expectedErr:       ErrGuard,
			expectedForbidden: true,
		},
		{
			name:         "owner removes admin",
			op:           "remove",
			actor:        ownerUser,
			membershipID: "m-dave",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-dave").Return(dave(), nil)
				expectConverged(m, "owner-1", garageT1, types.RoleOwner)
				expectAuthorized(m, ownerUser(), garageT1, types.RoleOwner, authorization.CAN_REMOVE_ADMIN_PERMISSION, true)
				m.storage.EXPECT().UpdateMembership(gomock.Any(), "m-dave", removePatch).Return(inactive(dave()), nil)
				m.authz.EXPECT().RevokeGarageAccess(gomock.Any(), garageT1, "dave").Return(nil)
				expectMemberProfile(m, "dave", types.ProfileCache{ActiveGarageID: garageT1, ActiveGarageRole: types.RoleAdmin}, types.ProfileCache{})
				m.security.EXPECT().AdminAction("owner-1", "remove", "membership:m-dave")
			},
			expectedRole:   types.RoleAdmin,
			expectedActive: false,
		},
		{
			name:         "admin removes staff",
			op:           "remove",
			actor:        adminUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
				expectConverged(m, "admin-1", garageT1, types.RoleAdmin)
				expectAuthorized(m, adminUser(), garageT1, types.RoleAdmin, authorization.CAN_REMOVE_STAFF_PERMISSION, true)
				m.storage.EXPECT().UpdateMembership(gomock.Any(), "m-carol", removePatch).Return(inactive(carol()), nil)
				m.authz.EXPECT().RevokeGarageAccess(gomock.Any(), garageT1, "carol").Return(nil)
				expectMemberProfile(m, "carol", types.ProfileCache{ActiveGarageID: garageT2, ActiveGarageRole: types.RoleStaff}, types.ProfileCache{})
				m.security.EXPECT().AdminAction("admin-1", "remove", "membership:m-carol")
			},
			expectedRole:   types.RoleStaff,
			expectedActive: false,
		},
		{
			name:         "admin cannot remove another admin",
			op:           "remove",
			actor:        adminUser,
			membershipID: "m-dave",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-dave").Return(dave(), nil)
			},
			expectedErr:       ErrGuard,
			expectedForbidden: true,
		},
		{
			name:         "staff cannot remove",
			op:           "remove",
			actor:        staffUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
			},
			expectedErr:       ErrGuard,
			expectedForbidden: true,
		},
		{
			name:         "owner cannot be removed",
			op:           "remove",
			actor:        adminUser,
			membershipID: "m-owner",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-owner").
					Return(membership("m-owner", garageT1, "owner-1", "alice@x.com", types.RoleOwner), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "self removal is checked before the actor role",
			op:           "remove",
			actor:        staffUser,
			membershipID: "m-sam",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-sam").
					Return(membership("m-sam", garageT1, "staff-1", "sam@x.com", types.RoleStaff), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "already removed member",
			op:           "remove",
			actor:        ownerUser,
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(inactive(carol()), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "self action with an empty cache writes nothing",
			op:           "promote",
			actor:        func() *types.User { return &types.User{ID: "staff-1", Email: "sam@x.com"} },
			membershipID: "m-sam",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().FilterMemberships(gomock.Any(), types.MembershipFilter{UserEmail: "sam@x.com", Active: active()}).
					Return([]*types.Membership{membership("m-sam", garageT1, "staff-1", "sam@x.com", types.RoleStaff)}, nil)
				m.storage.EXPECT().GetMembership(gomock.Any(), "m-sam").
					Return(membership("m-sam", garageT1, "staff-1", "sam@x.com", types.RoleStaff), nil)
			},
			expectedErr: ErrGuard,
		},
		{
			name:         "actor without a garage is not provisioned one",
			op:           "remove",
			actor:        func() *types.User { return &types.User{ID: "eve", Email: "eve@x.com"} },
			membershipID: "m-carol",
			setupMocks: func(m *serviceMocks) {
				m.storage.EXPECT().FilterMemberships(gomock.Any(), types.MembershipFilter{UserEmail: "eve@x.com", Active: active()}).Return(nil, nil)
				m.storage.EXPECT().FilterGarages(gomock.Any(), types.GarageFilter{OwnerID: "eve"}).Return(nil, nil)
			},
			expectedErr: ErrGarageNotFound,
		},
		{
			name:         "missing actor",
			op:           "remove",
			actor:        func() *types.User { return nil },
			membershipID: "m-carol",
			setupMocks:   func(*serviceMocks) {},
			expectedErr:  ErrIdentityMissing,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, m := setupService(t)
			tc.setupMocks(m)

			var fn func(context.Context, *types.User, string) (*types.Membership, error)
			switch tc.op {
			case "promote":
				fn = s.Promote
			case "demote":
				fn = s.Demote
			case "remove":
				fn = s.Remove
			}

			updated, err := fn(context.Background(), tc.actor(), tc.membershipID)

			if tc.expectedErr != nil {
				if !errors.Is(err, tc.expectedErr) {
					t.Fatalf("expected error %v, got %v", tc.expectedErr, err)
				}

				if forbidden := errors.Is(err, ErrPermissionDenied); tc.expectedErr == ErrGuard && forbidden != tc.expectedForbidden {
					t.Errorf("expected forbidden %v, got error %v", tc.expectedForbidden, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if updated.Role != tc.expectedRole {
				t.Errorf("expected role %q, got %q", tc.expectedRole, updated.Role)
			}

			if updated.Active != tc.expectedActive {
				t.Errorf("expected active %v, got %v", tc.expectedActive, updated.Active)
			}
		})
	}
}

func TestService_PermissionErrorCarriesEffectiveRole(t *testing.T) {
	s, m := setupService(t)

	m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
	expectConverged(m, "owner-1", garageT1, types.RoleOwner)
	// the membership table says admin, the cache still says owner
	expectAuthorized(m, ownerUser(), garageT1, types.RoleAdmin, authorization.CAN_MANAGE_ROLES_PERMISSION, false)
	m.security.EXPECT().AuthzFailure("owner-1", "garage:"+garageT1, authorization.CAN_MANAGE_ROLES_PERMISSION)

	_, err := s.Promote(context.Background(), ownerUser(), "m-carol")

	var perr *PermissionError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a PermissionError, got %v", err)
	}

	if perr.EffectiveRole != string(types.RoleOwner) || perr.Op != "promote" {
		t.Errorf("unexpected permission error %+v", perr)
	}
}

func TestService_MutationStopsWhenSyncIsCancelled(t *testing.T) {
	s, m := setupService(t)

	m.storage.EXPECT().GetMembership(gomock.Any(), "m-carol").Return(carol(), nil)
	m.cache.EXPECT().UpdateProfile(gomock.Any(), "owner-1", gomock.Any()).Return(nil)
	m.sleeper.EXPECT().Sleep(gomock.Any(), gomock.Any()).Return(context.Canceled)

	if _, err := s.Promote(context.Background(), ownerUser(), "m-carol"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
