// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/openfga"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

func TestAuthorizer_Check(t *testing.T) {
	user := "user:123"
	relation := "can_view"
	object := "garage:456"
	contextualTuples := []openfga.Tuple{*openfga.NewTuple("user:123", "staff", "garage:456")}

	testCases := []struct {
		name           string
		setupMocks     func(*MockAuthzClientInterface)
		expectedResult bool
		expectedErr    bool
	}{
		{
			name: "success - allowed",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(true, nil)
			},
			expectedResult: true,
			expectedErr:    false,
		},
		{
			name: "success - not allowed",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(false, nil)
			},
			expectedResult: false,
			expectedErr:    false,
		},
		{
			name: "error - client error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().Check(gomock.Any(), user, relation, object, contextualTuples).Return(false, errors.New("client error"))
			},
			expectedResult: false,
			expectedErr:    true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockAuthzClientInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			a := NewAuthorizer(mockClient, mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.Check").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockClient)

			result, err := a.Check(context.Background(), user, relation, object, contextualTuples...)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if result != tc.expectedResult {
				t.Errorf("expected result %v, got %v", tc.expectedResult, result)
			}
		})
	}
}

func TestAuthorizer_ListObjects(t *testing.T) {
	user := "user:123"
	relation := "can_view"
	objectType := "garage"
	objects := []string{"garage:1", "garage:2", "garage:3"}

	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr bool
	}{
		{
			name: "success",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().ListObjects(gomock.Any(), user, relation, objectType).Return(objects, nil)
			},
			expectedErr: false,
		},
		{
			name: "error - client error",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().ListObjects(gomock.Any(), user, relation, objectType).Return(nil, errors.New("client error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockAuthzClientInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			a := NewAuthorizer(mockClient, mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer.ListObjects").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockClient)

			result, err := a.ListObjects(context.Background(), user, relation, objectType)

			if tc.expectedErr {
				if err == nil {
					t.Error("expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				if len(result) != len(objects) {
					t.Errorf("expected %d objects, got %d", len(objects), len(result))
				}
			}
		})
	}
}


func setupAuthorizer(t *testing.T) (*Authorizer, *MockAuthzClientInterface, *MockTracingInterface, *MockLoggerInterface) {
	ctrl := gomock.NewController(t)

	mockClient := NewMockAuthzClientInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()

	return NewAuthorizer(mockClient, mockTracer, mockMonitor, mockLogger), mockClient, mockTracer, mockLogger
}

func TestAuthorizer_ValidateModel(t *testing.T) {
	testCases := []struct {
		name        string
		setupMocks  func(*MockAuthzClientInterface)
		expectedErr error
	}{
		{
			name: "model matches",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(true, nil)
			},
		},
		{
			name: "model differs",
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			expectedErr: ErrInvalidAuthModel,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, _, _ := setupAuthorizer(t)
			tc.setupMocks(mockClient)

			err := a.ValidateModel(context.Background())
			if !errors.Is(err, tc.expectedErr) {
				t.Fatalf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestAuthorizer_CheckGarageAction(t *testing.T) {
	testCases := []struct {
		name       string
		role       types.Role
		permission string
		setupMocks func(*MockAuthzClientInterface)
		expected   bool
	}{
		{
			name:       "staff cannot manage roles, openfga is not asked",
			role:       types.RoleStaff,
			permission: CAN_MANAGE_ROLES_PERMISSION,
			setupMocks: func(*MockAuthzClientInterface) {},
			expected:   false,
		},
		{
			name:       "admin cannot remove an admin, openfga is not asked",
			role:       types.RoleAdmin,
			permission: CAN_REMOVE_ADMIN_PERMISSION,
			setupMocks: func(*MockAuthzClientInterface) {},
			expected:   false,
		},
		{
			name:       "owner manages roles when openfga agrees",
			role:       types.RoleOwner,
			permission: CAN_MANAGE_ROLES_PERMISSION,
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().
					Check(gomock.Any(), "user:u1", CAN_MANAGE_ROLES_PERMISSION, "garage:g1", *openfga.NewTuple("user:u1", "owner", "garage:g1")).
					Return(true, nil)
			},
			expected: true,
		},
		{
			name:       "admin removes staff but openfga denies",
			role:       types.RoleAdmin,
			permission: CAN_REMOVE_STAFF_PERMISSION,
			setupMocks: func(mockClient *MockAuthzClientInterface) {
				mockClient.EXPECT().
					Check(gomock.Any(), "user:u1", CAN_REMOVE_STAFF_PERMISSION, "garage:g1", *openfga.NewTuple("user:u1", "admin", "garage:g1")).
					Return(false, nil)
			},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, mockClient, _, _ := setupAuthorizer(t)
			tc.setupMocks(mockClient)

			allowed, err := a.CheckGarageAction(context.Background(), "g1", "u1", tc.role, tc.permission)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if allowed != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, allowed)
			}
		})
	}
}

func TestAuthorizer_AssignGarageRole(t *testing.T) {
	a, mockClient, _, _ := setupAuthorizer(t)

	mockClient.EXPECT().WriteTuple(gomock.Any(), "user:u1", "staff", "garage:g1").Return(nil)

	if err := a.AssignGarageRole(context.Background(), "g1", "u1", types.RoleStaff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthorizer_ReplaceGarageRole(t *testing.T) {
	t.Run("writes new relation then deletes old one", func(t *testing.T) {
		a, mockClient, _, _ := setupAuthorizer(t)

		gomock.InOrder(
			mockClient.EXPECT().WriteTuple(gomock.Any(), "user:u1", "admin", "garage:g1").Return(nil),
			mockClient.EXPECT().DeleteTuple(gomock.Any(), "user:u1", "staff", "garage:g1").Return(nil),
		)

		if err := a.ReplaceGarageRole(context.Background(), "g1", "u1", types.RoleStaff, types.RoleAdmin); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("write failure keeps the old relation", func(t *testing.T) {
		a, mockClient, _, _ := setupAuthorizer(t)

		mockClient.EXPECT().WriteTuple(gomock.Any(), "user:u1", "staff", "garage:g1").Return(errors.New("unavailable"))

		if err := a.ReplaceGarageRole(context.Background(), "g1", "u1", types.RoleAdmin, types.RoleStaff); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("same role is a no-op", func(t *testing.T) {
		a, _, _, _ := setupAuthorizer(t)

		if err := a.ReplaceGarageRole(context.Background(), "g1", "u1", types.RoleAdmin, types.RoleAdmin); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestAuthorizer_RevokeGarageAccess(t *testing.T) {
	page := func(token string, relations ...string) *client.ClientReadResponse {
		tuples := make([]fga.Tuple, 0, len(relations))
		for _, r := range relations {
			tuples = append(tuples, fga.Tuple{Key: fga.TupleKey{User: "user:u1", Relation: r, Object: "garage:g1"}})
		}
		return &client.ClientReadResponse{Tuples: tuples, ContinuationToken: token}
	}

	t.Run("follows continuation tokens", func(t *testing.T) {
		a, mockClient, _, _ := setupAuthorizer(t)

		gomock.InOrder(
			mockClient.EXPECT().ReadTuples(gomock.Any(), "user:u1", "", "garage:g1", "").Return(page("next", "admin"), nil),
			mockClient.EXPECT().DeleteTuples(gomock.Any(), *openfga.NewTuple("user:u1", "admin", "garage:g1")).Return(nil),
			mockClient.EXPECT().ReadTuples(gomock.Any(), "user:u1", "", "garage:g1", "next").Return(page("", "staff"), nil),
			mockClient.EXPECT().DeleteTuples(gomock.Any(), *openfga.NewTuple("user:u1", "staff", "garage:g1")).Return(nil),
		)

		if err := a.RevokeGarageAccess(context.Background(), "g1", "u1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("read error is returned", func(t *testing.T) {
		a, mockClient, _, mockLogger := setupAuthorizer(t)

		mockClient.EXPECT().ReadTuples(gomock.Any(), "user:u1", "", "garage:g1", "").Return(nil, errors.New("boom"))
		mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)

		if err := a.RevokeGarageAccess(context.Background(), "g1", "u1"); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestRoleAllows(t *testing.T) {
	testCases := []struct {
		role       types.Role
		permission string
		expected   bool
	}{
		{types.RoleOwner, CAN_MANAGE_ROLES_PERMISSION, true},
		{types.RoleAdmin, CAN_MANAGE_ROLES_PERMISSION, false},
		{types.RoleOwner, CAN_REMOVE_ADMIN_PERMISSION, true},
		{types.RoleAdmin, CAN_REMOVE_ADMIN_PERMISSION, false},
		{types.RoleAdmin, CAN_REMOVE_STAFF_PERMISSION, true},
		{types.RoleStaff, CAN_REMOVE_STAFF_PERMISSION, false},
		{types.RoleAdmin, CAN_INVITE_STAFF_PERMISSION, true},
		{types.RoleAdmin, CAN_INVITE_ADMIN_PERMISSION, false},
		{types.RoleStaff, CAN_VIEW_PERMISSION, true},
		{types.Role(""), CAN_VIEW_PERMISSION, false},
		{types.RoleOwner, "can_fly", false},
	}

	for _, tc := range testCases {
		t.Run(string(tc.role)+"/"+tc.permission, func(t *testing.T) {
			if got := RoleAllows(tc.role, tc.permission); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}

	if RemovePermission(types.RoleStaff) != CAN_REMOVE_STAFF_PERMISSION || RemovePermission(types.RoleAdmin) != CAN_REMOVE_ADMIN_PERMISSION {
		t.Fatal("unexpected remove permission mapping")
	}
	if InvitePermission(types.RoleStaff) != CAN_INVITE_STAFF_PERMISSION || InvitePermission(types.RoleAdmin) != CAN_INVITE_ADMIN_PERMISSION {
		t.Fatal("unexpected invite permission mapping")
	}
}

func TestAuthorizationModelProvider(t *testing.T) {
	model := NewAuthorizationModelProvider("v0").GetModel()
	if model == nil {
		t.Fatal("expected v0 model")
	}
	if model.SchemaVersion != "1.1" {
		t.Fatalf("unexpected schema version %q", model.SchemaVersion)
	}

	found := false
	for _, td := range model.TypeDefinitions {
		if td.Type != "garage" {
			continue
		}
		found = true
		for perm := range permissionRoles {
			if _, ok := (*td.Relations)[perm]; !ok {
				t.Errorf("model is missing relation %s", perm)
			}
		}
	}
	if !found {
		t.Fatal("expected garage type in model")
	}

	if NewAuthorizationModelProvider("v9").GetModel() != nil {
		t.Fatal("expected nil for unknown version")
	}
}
