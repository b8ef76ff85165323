// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	ory "github.com/ory/client-go"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

const (
	metadataActiveGarageID   = "activeGarageId"
	metadataActiveGarageRole = "activeGarageRole"
)

var ErrIdentityNotFound = errors.New("identity not found")

var _ ClientInterface = (*Client)(nil)

type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// GetUser loads the identity and maps its traits and public metadata onto a session user.
func (c *Client) GetUser(ctx context.Context, id string) (*types.User, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.GetUser")
	defer span.End()

	identity, err := c.getIdentity(ctx, id)
	if err != nil {
		return nil, err
	}

	return userFromIdentity(identity), nil
}

// UpdateProfile merges the active garage hint into metadata_public, leaving other keys alone.
// An empty field removes the corresponding key.
func (c *Client) UpdateProfile(ctx context.Context, id string, profile types.ProfileCache) error {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.UpdateProfile")
	defer span.End()

	identity, err := c.getIdentity(ctx, id)
	if err != nil {
		return err
	}

	metadata := make(map[string]interface{}, len(identity.MetadataPublic)+2)
	for k, v := range identity.MetadataPublic {
		metadata[k] = v
	}

	setOrDelete(metadata, metadataActiveGarageID, profile.ActiveGarageID)
	setOrDelete(metadata, metadataActiveGarageRole, string(profile.ActiveGarageRole))

	patch := []ory.JsonPatch{
		{
			Op:    "add",
			Path:  "/metadata_public",
			Value: metadata,
		},
	}

	_, r, err := c.client.IdentityAPI.PatchIdentity(ctx, id).JsonPatch(patch).Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return ErrIdentityNotFound
		}
		return fmt.Errorf("failed to patch identity metadata: %w", err)
	}

	return nil
}

func (c *Client) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.GetIdentityIDByEmail")
	defer span.End()

	// NOTE: we are setting an empty page token because of https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(types.NormalizeEmail(email)).PageToken("").Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return "", nil
	}

	return ids[0].Id, nil
}

func (c *Client) CreateIdentity(ctx context.Context, email, name string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.CreateIdentity")
	defer span.End()

	traits := map[string]interface{}{
		"email": types.NormalizeEmail(email),
	}
	if name != "" {
		traits["name"] = name
	}

	body := ory.CreateIdentityBody{
		SchemaId: "default",
		Traits:   traits,
	}

	identity, _, err := c.client.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	return identity.Id, nil
}

func (c *Client) CreateRecoveryLink(ctx context.Context, identityID string, expiresIn string) (string, string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.CreateRecoveryLink")
	defer span.End()

	body := ory.CreateRecoveryCodeForIdentityBody{
		IdentityId: identityID,
		ExpiresIn:  &expiresIn,
	}

	recoveryCode, _, err := c.client.IdentityAPI.CreateRecoveryCodeForIdentity(ctx).CreateRecoveryCodeForIdentityBody(body).Execute()
	if err != nil {
		return "", "", fmt.Errorf("failed to create recovery code: %w", err)
	}

	return recoveryCode.RecoveryLink, recoveryCode.RecoveryCode, nil
}

func (c *Client) getIdentity(ctx context.Context, id string) (*ory.Identity, error) {
	identity, r, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, nil
}

func setOrDelete(m map[string]interface{}, key, value string) {
	if value == "" {
		delete(m, key)
		return
	}
	m[key] = value
}

func userFromIdentity(identity *ory.Identity) *types.User {
	user := &types.User{ID: identity.Id}

	if traits, ok := identity.Traits.(map[string]interface{}); ok {
		if email, ok := traits["email"].(string); ok {
			user.Email = types.NormalizeEmail(email)
		}
		user.Name = traitName(traits["name"])
	}

	if v, ok := identity.MetadataPublic[metadataActiveGarageID].(string); ok {
		user.Profile.ActiveGarageID = v
	}
	if v, ok := identity.MetadataPublic[metadataActiveGarageRole].(string); ok {
		user.Profile.ActiveGarageRole = types.Role(v)
	}

	return user
}

// traitName accepts both a flat "name" trait and the {first, last} shape of the default schema.
func traitName(v interface{}) string {
	switch name := v.(type) {
	case string:
		return strings.TrimSpace(name)
	case map[string]interface{}:
		first, _ := name["first"].(string)
		last, _ := name["last"].(string)
		return strings.TrimSpace(first + " " + last)
	}
	return ""
}
