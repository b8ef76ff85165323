// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	"github.com/ory/hydra/v2/oauth2"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/kratos"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/garage"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestService_HandleRegistration(t *testing.T) {
	identityID := "identity-123"
	email := "Alice@Example.com"

	testCases := []struct {
		name        string
		identityID  string
		email       string
		setupMocks  func(*MockGarageInterface, *MockUserCacheInterface, *MockLoggerInterface)
		expectedErr bool
	}{
		{
			name:       "success",
			identityID: identityID,
			email:      email,
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
				mockUsers.EXPECT().GetUser(gomock.Any(), identityID).Return(&types.User{ID: identityID, Email: "alice@example.com", Name: "Alice"}, nil)
				mockGarages.EXPECT().ResolveActiveGarage(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *types.User) (string, error) {
						if u.Name != "Alice" {
							return "", errors.New("expected the identity name to be used")
						}
						return "garage-1", nil
					})
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name:       "success - identity lookup fails",
			identityID: identityID,
			email:      email,
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
				mockUsers.EXPECT().GetUser(gomock.Any(), identityID).Return(nil, errors.New("kratos down"))
				mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any())
				mockGarages.EXPECT().ResolveActiveGarage(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, u *types.User) (string, error) {
						if u.ID != identityID || u.Email != "alice@example.com" {
							return "", errors.New("expected the payload to be used")
						}
						return "garage-1", nil
					})
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any())
			},
		},
		{
			name:       "error - empty identity id",
			identityID: "",
			email:      email,
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedErr: true,
		},
		{
			name:       "error - empty email",
			identityID: identityID,
			email:      "",
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
			},
			expectedErr: true,
		},
		{
			name:       "error - provisioning fails",
			identityID: identityID,
			email:      email,
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any(), gomock.Any())
				mockUsers.EXPECT().GetUser(gomock.Any(), identityID).Return(&types.User{ID: identityID, Email: "alice@example.com"}, nil)
				mockGarages.EXPECT().ResolveActiveGarage(gomock.Any(), gomock.Any()).Return("", errors.New("db error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockGarages := NewMockGarageInterface(ctrl)
			mockUsers := NewMockUserCacheInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandleRegistration").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockGarages, mockUsers, mockLogger)

			svc := NewService(mockGarages, mockUsers, mockTracer, mockMonitor, mockLogger)
			err := svc.HandleRegistration(context.Background(), tc.identityID, tc.email)

			if tc.expectedErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.expectedErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestService_HandleTokenHook(t *testing.T) {
	userID := "user-123"
	user := &types.User{ID: userID, Email: "carol@example.com"}

	testCases := []struct {
		name         string
		req          *oauth2.TokenHookRequest
		setupMocks   func(*MockGarageInterface, *MockUserCacheInterface)
		expectedErr  bool
		expectClaims bool
	}{
		{
			name: "success",
			req:  &oauth2.TokenHookRequest{Session: oauth2.NewSession(userID)},
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface) {
				mockUsers.EXPECT().GetUser(gomock.Any(), userID).Return(user, nil)
				mockGarages.EXPECT().CurrentGarage(gomock.Any(), user).Return(&garage.ActiveGarage{
					Garage: &types.Garage{ID: "garage-1"},
					Role:   types.RoleAdmin,
					Synced: true,
				}, nil)
			},
			expectClaims: true,
		},
		{
			name: "claims carry the stored role, not the cached one",
			req:  &oauth2.TokenHookRequest{Session: oauth2.NewSession(userID)},
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface) {
				cached := &types.User{ID: userID, Email: "carol@example.com", Profile: types.ProfileCache{ActiveGarageID: "garage-1", ActiveGarageRole: types.RoleOwner}}
				mockUsers.EXPECT().GetUser(gomock.Any(), userID).Return(cached, nil)
				mockGarages.EXPECT().CurrentGarage(gomock.Any(), cached).Return(&garage.ActiveGarage{
					Garage: &types.Garage{ID: "garage-1"},
					Role:   types.RoleAdmin,
				}, nil)
			},
			expectClaims: true,
		},
		{
			name: "removed member gets no claims",
			req:  &oauth2.TokenHookRequest{Session: oauth2.NewSession(userID)},
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface) {
				removed := &types.User{ID: userID, Email: "carol@example.com", Profile: types.ProfileCache{ActiveGarageID: "garage-1", ActiveGarageRole: types.RoleAdmin}}
				mockUsers.EXPECT().GetUser(gomock.Any(), userID).Return(removed, nil)
				mockGarages.EXPECT().CurrentGarage(gomock.Any(), removed).Return(&garage.ActiveGarage{
					Garage: &types.Garage{ID: "garage-1"},
				}, nil)
			},
		},
		{
			name: "client credentials subject gets no claims",
			req:  &oauth2.TokenHookRequest{Session: oauth2.NewSession("client-id")},
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface) {
				mockUsers.EXPECT().GetUser(gomock.Any(), "client-id").Return(nil, kratos.ErrIdentityNotFound)
			},
		},
		{
			name:        "nil session",
			req:         &oauth2.TokenHookRequest{},
			setupMocks:  func(*MockGarageInterface, *MockUserCacheInterface) {},
			expectedErr: true,
		},
		{
			name:        "empty subject",
			req:         &oauth2.TokenHookRequest{Session: oauth2.NewSession("")},
			setupMocks:  func(*MockGarageInterface, *MockUserCacheInterface) {},
			expectedErr: true,
		},
		{
			name: "identity lookup fails",
			req:  &oauth2.TokenHookRequest{Session: oauth2.NewSession(userID)},
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface) {
				mockUsers.EXPECT().GetUser(gomock.Any(), userID).Return(nil, errors.New("kratos down"))
			},
			expectedErr: true,
		},
		{
			name: "garage resolution fails",
			req:  &oauth2.TokenHookRequest{Session: oauth2.NewSession(userID)},
			setupMocks: func(mockGarages *MockGarageInterface, mockUsers *MockUserCacheInterface) {
				mockUsers.EXPECT().GetUser(gomock.Any(), userID).Return(user, nil)
				mockGarages.EXPECT().CurrentGarage(gomock.Any(), user).Return(nil, errors.New("db error"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockGarages := NewMockGarageInterface(ctrl)
			mockUsers := NewMockUserCacheInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "webhooks.Service.HandleTokenHook").Return(context.Background(), trace.SpanFromContext(context.Background()))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()
			tc.setupMocks(mockGarages, mockUsers)

			svc := NewService(mockGarages, mockUsers, mockTracer, mockMonitor, mockLogger)
			resp, err := svc.HandleTokenHook(context.Background(), tc.req)

			if tc.expectedErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !tc.expectClaims {
				if resp.Session.IDToken != nil || resp.Session.AccessToken != nil {
					t.Fatalf("expected no claims, got %+v", resp.Session)
				}
				return
			}

			for _, claims := range []map[string]interface{}{resp.Session.IDToken, resp.Session.AccessToken} {
				if claims[GarageIDClaim] != "garage-1" {
					t.Errorf("expected garage-1, got %v", claims[GarageIDClaim])
				}
				if claims[GarageRoleClaim] != "admin" {
					t.Errorf("expected admin, got %v", claims[GarageRoleClaim])
				}
			}
		})
	}
}
