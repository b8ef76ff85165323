// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/authentication"
	"github.com/ludquiz-hash/visiocaret-sub000/pkg/garage"
)

const garagePath = "/api/v0/garage"

// garageClient talks to the garage HTTP API on behalf of a single identity.
type garageClient struct {
	endpoint string
	userID   string
	token    string

	http *http.Client
}

func newGarageClient(endpoint, userID, token string) *garageClient {
	if !strings.HasPrefix(endpoint, "http") {
		endpoint = "http://" + endpoint
	}

	return &garageClient{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		userID:   userID,
		token:    token,
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// getClient builds a client from the persistent flags.
func getClient() *garageClient {
	return newGarageClient(httpEndpoint, userID, accessToken)
}

func (c *garageClient) Current(ctx context.Context) (*garage.ActiveGarage, error) {
	out := new(garage.ActiveGarage)
	if err := c.do(ctx, http.MethodGet, garagePath, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *garageClient) Select(ctx context.Context, garageID string) (*garage.ActiveGarage, error) {
	out := new(garage.ActiveGarage)
	if err := c.do(ctx, http.MethodPut, garagePath+"/active", garage.SelectGarageRequest{GarageID: garageID}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *garageClient) ListMembers(ctx context.Context) ([]*types.Membership, error) {
	out := new(garage.MembersResponse)
	if err := c.do(ctx, http.MethodGet, garagePath+"/members", nil, out); err != nil {
		return nil, err
	}
	return out.Members, nil
}

func (c *garageClient) Invite(ctx context.Context, email, name string, role types.Role) (*garage.Invitation, error) {
	out := new(garage.Invitation)
	req := garage.InviteMemberRequest{Email: email, Name: name, Role: string(role)}
	if err := c.do(ctx, http.MethodPost, garagePath+"/members", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *garageClient) Promote(ctx context.Context, membershipID string) (*types.Membership, error) {
	return c.mutate(ctx, http.MethodPost, membershipPath(membershipID)+"/promote")
}

func (c *garageClient) Demote(ctx context.Context, membershipID string) (*types.Membership, error) {
	return c.mutate(ctx, http.MethodPost, membershipPath(membershipID)+"/demote")
}

func (c *garageClient) Remove(ctx context.Context, membershipID string) (*types.Membership, error) {
	return c.mutate(ctx, http.MethodDelete, membershipPath(membershipID))
}

func (c *garageClient) mutate(ctx context.Context, method, path string) (*types.Membership, error) {
	out := new(types.Membership)
	if err := c.do(ctx, method, path, nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func membershipPath(id string) string {
	return garagePath + "/members/" + url.PathEscape(id)
}

// apiError is returned for any non 2xx answer of the API.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
}

func (c *garageClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.userID != "" {
		req.Header.Set(authentication.IdentityHeaderName, c.userID)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &apiError{Status: resp.StatusCode}

		var errBody garage.ErrorResponse
		raw, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(raw, &errBody) == nil && errBody.Message != "" {
			apiErr.Message = errBody.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return nil
}
