// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/authentication"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/garage"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/status"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/webhooks"
)

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		identity       string
		setupMocks     func(*garage.MockServiceInterface, *garage.MockUserCacheInterface, *webhooks.MockServiceInterface)
		expectedStatus int
	}{
		{
			name:           "liveness is public",
			method:         http.MethodGet,
			path:           "/api/v0/status",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics are public",
			method:         http.MethodGet,
			path:           "/api/v0/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "garage API requires an identity",
			method:         http.MethodGet,
			path:           "/api/v0/garage",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:     "garage API with identity",
			method:   http.MethodGet,
			path:     "/api/v0/garage",
			identity: "user-1",
			setupMocks: func(svc *garage.MockServiceInterface, users *garage.MockUserCacheInterface, _ *webhooks.MockServiceInterface) {
				user := &types.User{ID: "user-1", Email: "carol@example.com"}
				users.EXPECT().GetUser(gomock.Any(), "user-1").Return(user, nil)
				svc.EXPECT().CurrentGarage(gomock.Any(), user).Return(&garage.ActiveGarage{
					Garage: &types.Garage{ID: "garage-1"},
					Role:   types.RoleStaff,
				}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "webhooks do not require an identity",
			method: http.MethodPost,
			path:   "/webhooks/registration",
			body:   `{"id":"user-1","traits":{"email":"carol@example.com"}}`,
			setupMocks: func(_ *garage.MockServiceInterface, _ *garage.MockUserCacheInterface, hooks *webhooks.MockServiceInterface) {
				hooks.EXPECT().HandleRegistration(gomock.Any(), "user-1", "carol@example.com").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			logger := logging.NewNoopLogger()
			tracer := tracing.NewNoopTracer()
			monitor := monitoring.NewNoopMonitor("garage-service", logger)

			garages := garage.NewMockServiceInterface(ctrl)
			users := garage.NewMockUserCacheInterface(ctrl)
			hooks := webhooks.NewMockServiceInterface(ctrl)

			if tt.setupMocks != nil {
				tt.setupMocks(garages, users, hooks)
			}

			router := NewRouter(
				Dependencies{
					Garages:      garages,
					Users:        users,
					Webhooks:     hooks,
					Authenticate: authentication.NewMiddleware(authentication.NewNoopVerifier(), tracer, monitor, logger).IdentityHeader(),
					Probes:       map[string]status.DependencyInterface{},
				},
				tracer, monitor, logger,
			)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.identity != "" {
				req.Header.Set(authentication.IdentityHeaderName, tt.identity)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
