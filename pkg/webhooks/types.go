// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import "github.com/ludquiz-hash/visiocaret-sub000/pkg/authentication"

// Claims written here are read back by the JWT verifier.
const (
	GarageIDClaim   = authentication.GarageIDClaim
	GarageRoleClaim = authentication.GarageRoleClaim
)

type KratosIdentity struct {
	ID     string       `json:"id"`
	Traits KratosTraits `json:"traits"`
}

type KratosTraits struct {
	Email string `json:"email"`
}

// TokenHookResponse is the body hydra merges into the issued tokens.
type TokenHookResponse struct {
	Session TokenHookSession `json:"session"`
}

type TokenHookSession struct {
	IDToken     map[string]interface{} `json:"id_token,omitempty"`
	AccessToken map[string]interface{} `json:"access_token,omitempty"`
}
