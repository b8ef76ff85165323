// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"testing"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

const testIssuer = "https://auth.visiocar.test"

func signToken(t *testing.T, key *rsa.PrivateKey, claims map[string]interface{}) string {
	t.Helper()

	enc := func(v interface{}) string {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(b)
	}

	signingInput := enc(map[string]string{"alg": "RS256", "typ": "JWT"}) + "." + enc(claims)
	digest := sha256.Sum256([]byte(signingInput))

	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		t.Fatalf("failed to sign: %v", err)
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func TestJWTVerifier_VerifyToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	other, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}

	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name            string
		signer          *rsa.PrivateKey
		claims          map[string]interface{}
		allowedSubjects []string
		requiredScope   string
		expectAuthzFail bool
		expectedSubject string
		expectedHint    types.ProfileCache
		expectErr       bool
	}{
		{
			name:            "allowed subject",
			claims:          map[string]interface{}{"iss": testIssuer, "sub": "garage-cli", "exp": exp},
			allowedSubjects: []string{"garage-cli"},
			expectedSubject: "garage-cli",
		},
		{
			name:            "required scope in scope claim",
			claims:          map[string]interface{}{"iss": testIssuer, "sub": "user-1", "exp": exp, "scope": "openid garage"},
			requiredScope:   "garage",
			expectedSubject: "user-1",
		},
		{
			name:            "required scope in scp claim",
			claims:          map[string]interface{}{"iss": testIssuer, "sub": "user-1", "exp": exp, "scp": []string{"garage"}},
			requiredScope:   "garage",
			expectedSubject: "user-1",
		},
		{
			name: "garage claims become the profile hint",
			claims: map[string]interface{}{
				"iss": testIssuer, "sub": "user-1", "exp": exp, "scope": "garage",
				"garage_id": "garage-1", "garage_role": "admin",
			},
			requiredScope:   "garage",
			expectedSubject: "user-1",
			expectedHint:    types.ProfileCache{ActiveGarageID: "garage-1", ActiveGarageRole: types.RoleAdmin},
		},
		{
			name: "unknown garage role is dropped",
			claims: map[string]interface{}{
				"iss": testIssuer, "sub": "user-1", "exp": exp, "scope": "garage",
				"garage_id": "garage-1", "garage_role": "superuser",
			},
			requiredScope:   "garage",
			expectedSubject: "user-1",
		},
		{
			name:            "missing scope",
			claims:          map[string]interface{}{"iss": testIssuer, "sub": "user-1", "exp": exp, "scope": "openid"},
			requiredScope:   "garage",
			expectAuthzFail: true,
			expectErr:       true,
		},
		{
			name:            "no access policy",
			claims:          map[string]interface{}{"iss": testIssuer, "sub": "user-1", "exp": exp},
			expectAuthzFail: true,
			expectErr:       true,
		},
		{
			name:            "wrong issuer",
			claims:          map[string]interface{}{"iss": "https://evil.test", "sub": "user-1", "exp": exp},
			allowedSubjects: []string{"user-1"},
			expectErr:       true,
		},
		{
			name:            "expired",
			claims:          map[string]interface{}{"iss": testIssuer, "sub": "user-1", "exp": time.Now().Add(-time.Hour).Unix()},
			allowedSubjects: []string{"user-1"},
			expectErr:       true,
		},
		{
			name:            "unknown signing key",
			signer:          other,
			claims:          map[string]interface{}{"iss": testIssuer, "sub": "user-1", "exp": exp},
			allowedSubjects: []string{"user-1"},
			expectErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockSecurity := NewMockSecurityLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "authentication.JWTVerifier.VerifyToken").DoAndReturn(
				func(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				},
			)
			mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).AnyTimes()

			if tt.expectAuthzFail {
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().AuthzFailure(tt.claims["sub"], "jwt_api_access", gomock.Any())
			}

			keySet := &oidc.StaticKeySet{PublicKeys: []crypto.PublicKey{&key.PublicKey}}
			idTokenVerifier := oidc.NewVerifier(testIssuer, keySet, &oidc.Config{SkipClientIDCheck: true})

			policy := AccessPolicy{AllowedSubjects: tt.allowedSubjects, RequiredScope: tt.requiredScope}
			verifier := NewJWTVerifier(idTokenVerifier, policy, mockTracer, mockMonitor, mockLogger)

			signer := key
			if tt.signer != nil {
				signer = tt.signer
			}

			principal, err := verifier.VerifyToken(context.Background(), signToken(t, signer, tt.claims))

			if tt.expectErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if principal.Subject != tt.expectedSubject {
				t.Errorf("expected subject %q, got %q", tt.expectedSubject, principal.Subject)
			}

			if hint, _ := principal.Hint(); hint != tt.expectedHint {
				t.Errorf("expected hint %+v, got %+v", tt.expectedHint, hint)
			}
		})
	}
}
