// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

const jwtResource = "jwt_api_access"

// AccessPolicy decides which verified tokens may call the API: a token passes when its
// subject is allowed or it carries the required scope.
type AccessPolicy struct {
	AllowedSubjects []string
	RequiredScope   string
}

func (p AccessPolicy) empty() bool {
	return len(p.AllowedSubjects) == 0 && p.RequiredScope == ""
}

func (p AccessPolicy) allows(c *tokenClaims) bool {
	if slices.Contains(p.AllowedSubjects, c.Subject) {
		return true
	}

	if p.RequiredScope == "" {
		return false
	}

	return slices.Contains(strings.Fields(c.Scope), p.RequiredScope) || slices.Contains(c.Scopes, p.RequiredScope)
}

type tokenClaims struct {
	Subject    string   `json:"sub"`
	Scope      string   `json:"scope"`
	Scopes     []string `json:"scp"`
	GarageID   string   `json:"garage_id"`
	GarageRole string   `json:"garage_role"`
}

type JWTVerifier struct {
	verifier *oidc.IDTokenVerifier
	policy   AccessPolicy

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (v *JWTVerifier) VerifyToken(ctx context.Context, rawToken string) (*Principal, error) {
	ctx, span := v.tracer.Start(ctx, "authentication.JWTVerifier.VerifyToken")
	defer span.End()

	token, err := v.verifier.Verify(ctx, rawToken)
	if err != nil {
		return nil, err
	}

	claims := new(tokenClaims)
	if err := token.Claims(claims); err != nil {
		v.logger.Debugf("Failed to extract claims: %v", err)
		return nil, err
	}

	if v.policy.empty() {
		v.logger.Security().AuthzFailure(claims.Subject, jwtResource, "no access policy configured")
		return nil, fmt.Errorf("unauthorized: no access policy configured")
	}

	if !v.policy.allows(claims) {
		v.logger.Security().AuthzFailure(claims.Subject, jwtResource, "missing required scope or subject not allowed")
		return nil, fmt.Errorf("unauthorized: missing required scope or subject not allowed")
	}

	p := &Principal{Subject: claims.Subject}

	// a malformed garage claim only loses the hint, the token itself is valid
	if role := types.Role(claims.GarageRole); claims.GarageID != "" && role.Valid() {
		p.GarageID, p.GarageRole = claims.GarageID, role
	} else if claims.GarageID != "" || claims.GarageRole != "" {
		v.logger.Debugf("Ignoring garage claims %q/%q of subject %s", claims.GarageID, claims.GarageRole, claims.Subject)
	}

	return p, nil
}

func NewJWTVerifier(
	verifier *oidc.IDTokenVerifier,
	policy AccessPolicy,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *JWTVerifier {
	return &JWTVerifier{
		verifier: verifier,
		policy:   policy,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}
