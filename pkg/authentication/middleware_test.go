// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_tracer.go -source=../../internal/tracing/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_verifier.go -source=./interfaces.go

func TestMiddleware_Authenticate(t *testing.T) {
	tests := []struct {
		name               string
		authHeader         string
		setupMocks         func(*gomock.Controller) TokenVerifierInterface
		expectedStatusCode int
		expectedBody       string
		expectedPrincipal  *Principal
	}{
		{
			name:       "Missing token - rejects request",
			authHeader: "",
			setupMocks: func(ctrl *gomock.Controller) TokenVerifierInterface {
				mockVerifier := NewMockTokenVerifierInterface(ctrl)
				return mockVerifier
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Invalid token format - rejects request",
			authHeader: "InvalidToken",
			setupMocks: func(ctrl *gomock.Controller) TokenVerifierInterface {
				mockVerifier := NewMockTokenVerifierInterface(ctrl)
				return mockVerifier
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Token verification fails - rejects request",
			authHeader: "Bearer invalid-token",
			setupMocks: func(ctrl *gomock.Controller) TokenVerifierInterface {
				mockVerifier := NewMockTokenVerifierInterface(ctrl)
				mockVerifier.EXPECT().VerifyToken(gomock.Any(), "invalid-token").Return(nil, fmt.Errorf("invalid token"))
				return mockVerifier
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:       "Valid token",
			authHeader: "Bearer valid-token",
			setupMocks: func(ctrl *gomock.Controller) TokenVerifierInterface {
				mockVerifier := NewMockTokenVerifierInterface(ctrl)
				mockVerifier.EXPECT().VerifyToken(gomock.Any(), "valid-token").
					Return(&Principal{Subject: "user-123", GarageID: "garage-1", GarageRole: types.RoleAdmin}, nil)
				return mockVerifier
			},
			expectedStatusCode: http.StatusOK,
			expectedBody:       "success",
			expectedPrincipal:  &Principal{Subject: "user-123", GarageID: "garage-1", GarageRole: types.RoleAdmin},
		},
		{
			name:       "Token without subject - rejects request",
			authHeader: "Bearer anonymous-token",
			setupMocks: func(ctrl *gomock.Controller) TokenVerifierInterface {
				mockVerifier := NewMockTokenVerifierInterface(ctrl)
				mockVerifier.EXPECT().VerifyToken(gomock.Any(), "anonymous-token").Return(&Principal{}, nil)
				return mockVerifier
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Middleware.Authenticate").Return(ctx, trace.SpanFromContext(ctx))
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

			mockVerifier := tt.setupMocks(ctrl)

			middleware := NewMiddleware(mockVerifier, mockTracer, mockMonitor, mockLogger)

			var principal *Principal
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				principal, _ = PrincipalFrom(r.Context())
				w.WriteHeader(http.StatusOK)
				w.Write([]byte("success"))
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			middleware.Authenticate()(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}

			if tt.expectedBody != "" && rr.Body.String() != tt.expectedBody {
				t.Errorf("expected body %q, got %q", tt.expectedBody, rr.Body.String())
			}

			if tt.expectedPrincipal != nil && (principal == nil || *principal != *tt.expectedPrincipal) {
				t.Errorf("expected principal %+v, got %+v", tt.expectedPrincipal, principal)
			}
		})
	}
}

func TestMiddleware_GetBearerToken(t *testing.T) {
	tests := []struct {
		name          string
		authHeader    string
		expectedToken string
		expectedFound bool
	}{
		{
			name:          "No Authorization header",
			authHeader:    "",
			expectedToken: "",
			expectedFound: false,
		},
		{
			name:          "Bearer token",
			authHeader:    "Bearer my-token-123",
			expectedToken: "my-token-123",
			expectedFound: true,
		},
		{
			name:          "Raw token without Bearer prefix",
			authHeader:    "my-token-123",
			expectedToken: "",
			expectedFound: false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockVerifier := NewMockTokenVerifierInterface(ctrl)

			middleware := NewMiddleware(mockVerifier, mockTracer, mockMonitor, mockLogger)

			headers := http.Header{}
			if test.authHeader != "" {
				headers.Set("Authorization", test.authHeader)
			}

			token, found := middleware.getBearerToken(headers)

			if token != test.expectedToken {
				t.Errorf("expected token %q, got %q", test.expectedToken, token)
			}
			if found != test.expectedFound {
				t.Errorf("expected found %v, got %v", test.expectedFound, found)
			}
		})
	}
}

func TestMiddleware_IdentityHeader(t *testing.T) {
	tests := []struct {
		name               string
		identityHeader     string
		expectedStatusCode int
		expectedUserID     string
	}{
		{
			name:               "Missing header - rejects request",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Blank header - rejects request",
			identityHeader:     "   ",
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Identity forwarded by proxy",
			identityHeader:     "identity-123",
			expectedStatusCode: http.StatusOK,
			expectedUserID:     "identity-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			ctx := context.Background()
			mockTracer.EXPECT().Start(gomock.Any(), "authentication.Middleware.IdentityHeader").Return(ctx, trace.SpanFromContext(ctx))

			middleware := NewMiddleware(NewNoopVerifier(), mockTracer, mockMonitor, mockLogger)

			var userID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if p, ok := PrincipalFrom(r.Context()); ok {
					userID = p.Subject
					if _, hinted := p.Hint(); hinted {
						t.Errorf("expected no garage hint from the identity header, got %+v", p)
					}
				}
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.identityHeader != "" {
				req.Header.Set(IdentityHeaderName, tt.identityHeader)
			}
			rr := httptest.NewRecorder()

			middleware.IdentityHeader()(handler).ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatusCode {
				t.Errorf("expected status %d, got %d", tt.expectedStatusCode, rr.Code)
			}

			if userID != tt.expectedUserID {
				t.Errorf("expected user ID %q, got %q", tt.expectedUserID, userID)
			}

			if tt.expectedStatusCode == http.StatusUnauthorized && rr.Header().Get("Content-Type") != "application/json" {
				t.Errorf("expected JSON error body, got %q", rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestNoopVerifier_VerifyToken(t *testing.T) {
	p, err := NewNoopVerifier().VerifyToken(context.Background(), "identity-123")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if p.Subject != "identity-123" {
		t.Errorf("expected token to be used as subject, got %q", p.Subject)
	}
}

func TestPrincipal_Hint(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		expected  types.ProfileCache
		found     bool
	}{
		{
			name:      "garage claims",
			principal: &Principal{Subject: "user-1", GarageID: "garage-1", GarageRole: types.RoleStaff},
			expected:  types.ProfileCache{ActiveGarageID: "garage-1", ActiveGarageRole: types.RoleStaff},
			found:     true,
		},
		{
			name:      "garage without role",
			principal: &Principal{Subject: "user-1", GarageID: "garage-1"},
		},
		{
			name:      "unknown role",
			principal: &Principal{Subject: "user-1", GarageID: "garage-1", GarageRole: "superuser"},
		},
		{
			name: "nil principal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint, found := tt.principal.Hint()
			if found != tt.found || hint != tt.expected {
				t.Errorf("expected %+v/%v, got %+v/%v", tt.expected, tt.found, hint, found)
			}
		})
	}
}

func TestPrincipalFrom(t *testing.T) {
	if _, ok := PrincipalFrom(context.Background()); ok {
		t.Error("expected no principal on an empty context")
	}

	if _, ok := PrincipalFrom(WithPrincipal(context.Background(), &Principal{})); ok {
		t.Error("expected a principal without subject to be ignored")
	}

	p, ok := PrincipalFrom(WithPrincipal(context.Background(), &Principal{Subject: "user-1"}))
	if !ok || p.Subject != "user-1" {
		t.Errorf("expected user-1, got %+v", p)
	}
}
