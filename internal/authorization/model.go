// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"encoding/json"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/language/pkg/go/transformer"
)

const v0AuthorizationModel = `model
  schema 1.1

type user

type garage
  relations
    define owner: [user]
    define admin: [user] or owner
    define staff: [user] or admin
    define can_view: staff
    define can_invite_staff: admin
    define can_invite_admin: owner
    define can_manage_roles: owner
    define can_remove_staff: admin
    define can_remove_admin: owner
`

var models = map[string]string{
	"v0": v0AuthorizationModel,
}

type AuthorizationModelProvider struct {
	apiVersion string
}

// GetModel compiles the DSL for the provider's api version, nil when the version is unknown.
func (a *AuthorizationModelProvider) GetModel() *fga.AuthorizationModel {
	dsl, ok := models[a.apiVersion]
	if !ok {
		return nil
	}

	raw, err := transformer.TransformDSLToJSON(dsl)
	if err != nil {
		panic(err)
	}

	model := new(fga.AuthorizationModel)
	if err := json.Unmarshal([]byte(raw), model); err != nil {
		panic(err)
	}

	return model
}

func NewAuthorizationModelProvider(apiVersion string) *AuthorizationModelProvider {
	return &AuthorizationModelProvider{apiVersion: apiVersion}
}
