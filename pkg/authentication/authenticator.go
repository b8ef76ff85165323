// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"net/http"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
)

var otelHTTPClient = http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}

// NewJWTAuthenticator builds a verifier for tokens issued by issuer. Keys come from jwksURL
// when set, otherwise from OIDC discovery.
func NewJWTAuthenticator(
	ctx context.Context,
	issuer string,
	jwksURL string,
	policy AccessPolicy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) (*JWTVerifier, error) {
	if issuer == "" {
		return nil, fmt.Errorf("issuer is required for JWT authentication")
	}

	if policy.empty() {
		logger.Warn("JWT authentication has no allowed subjects or required scope, every token will be rejected")
	}

	verifier, err := idTokenVerifier(ctx, issuer, jwksURL)
	if err != nil {
		return nil, err
	}

	logger.Infof("JWT authentication is enabled for issuer %s", issuer)

	return NewJWTVerifier(verifier, policy, tracer, monitor, logger), nil
}

func idTokenVerifier(ctx context.Context, issuer, jwksURL string) (*oidc.IDTokenVerifier, error) {
	ctx = oidc.ClientContext(ctx, &otelHTTPClient)

	// access tokens carry no client audience
	config := &oidc.Config{SkipClientIDCheck: true}

	if jwksURL != "" {
		return oidc.NewVerifier(issuer, oidc.NewRemoteKeySet(ctx, jwksURL), config), nil
	}

	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	return provider.Verifier(config), nil
}
