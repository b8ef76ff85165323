// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ludquiz-hash/visiocaret-sub000/internal/logging"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/monitoring"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/tracing"
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

type fakeKratos struct {
	mu         sync.Mutex
	identities map[string]map[string]interface{}
	patches    int
}

func (f *fakeKratos) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /admin/identities/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		identity, ok := f.identities[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(identity)
	})

	mux.HandleFunc("PATCH /admin/identities/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		identity, ok := f.identities[r.PathValue("id")]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"code":404,"message":"not found"}}`))
			return
		}

		var patch []struct {
			Op    string      `json:"op"`
			Path  string      `json:"path"`
			Value interface{} `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil || len(patch) != 1 || patch[0].Path != "/metadata_public" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		f.patches++
		identity["metadata_public"] = patch[0].Value
		_ = json.NewEncoder(w).Encode(identity)
	})

	return jsonResponses(mux)
}

// jsonResponses sets the content type the generated clients require to decode a body.
func jsonResponses(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

func newIdentity(id, email string, metadata map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":              id,
		"schema_id":       "default",
		"schema_url":      "http://kratos/schemas/default",
		"traits":          map[string]interface{}{"email": email, "name": map[string]interface{}{"first": "Ada", "last": "Lovelace"}},
		"metadata_public": metadata,
	}
}

func setupClient(t *testing.T, f *fakeKratos) *Client {
	t.Helper()

	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)

	logger := logging.NewNoopLogger()
	return NewClient(srv.URL, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
}

func TestGetUser(t *testing.T) {
	f := &fakeKratos{identities: map[string]map[string]interface{}{
		"user-1": newIdentity("user-1", "Ada@Example.com", map[string]interface{}{
			"activeGarageId":   "garage-1",
			"activeGarageRole": "admin",
		}),
	}}
	c := setupClient(t, f)

	user, err := c.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := types.ProfileCache{ActiveGarageID: "garage-1", ActiveGarageRole: types.RoleAdmin}
	if user.Profile != expected {
		t.Fatalf("expected profile %+v, got %+v", expected, user.Profile)
	}
	if user.Email != "ada@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Name != "Ada Lovelace" {
		t.Fatalf("expected name from traits, got %q", user.Name)
	}

	if _, err := c.GetUser(context.Background(), "missing"); !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
}

func TestUpdateProfileMergesMetadata(t *testing.T) {
	f := &fakeKratos{identities: map[string]map[string]interface{}{
		"user-1": newIdentity("user-1", "ada@example.com", map[string]interface{}{
			"locale":           "fr",
			"activeGarageRole": "staff",
		}),
	}}
	c := setupClient(t, f)

	err := c.UpdateProfile(context.Background(), "user-1", types.ProfileCache{ActiveGarageID: "garage-9", ActiveGarageRole: types.RoleOwner})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	metadata := f.identities["user-1"]["metadata_public"].(map[string]interface{})
	if metadata["locale"] != "fr" {
		t.Fatalf("expected unrelated metadata to survive, got %v", metadata)
	}
	if metadata["activeGarageId"] != "garage-9" || metadata["activeGarageRole"] != "owner" {
		t.Fatalf("unexpected metadata %v", metadata)
	}

	user, err := c.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !user.Profile.Matches("garage-9", types.RoleOwner) {
		t.Fatalf("expected read-back to match, got %+v", user.Profile)
	}
}

func TestUpdateProfileClearsEmptyFields(t *testing.T) {
	f := &fakeKratos{identities: map[string]map[string]interface{}{
		"user-1": newIdentity("user-1", "ada@example.com", map[string]interface{}{
			"activeGarageId":   "garage-1",
			"activeGarageRole": "admin",
		}),
	}}
	c := setupClient(t, f)

	if err := c.UpdateProfile(context.Background(), "user-1", types.ProfileCache{ActiveGarageID: "garage-1"}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	metadata := f.identities["user-1"]["metadata_public"].(map[string]interface{})
	if _, ok := metadata["activeGarageRole"]; ok {
		t.Fatalf("expected role to be cleared, got %v", metadata)
	}
}

func TestUpdateProfileMissingIdentity(t *testing.T) {
	f := &fakeKratos{identities: map[string]map[string]interface{}{}}
	c := setupClient(t, f)

	err := c.UpdateProfile(context.Background(), "missing", types.ProfileCache{ActiveGarageID: "g"})
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("expected ErrIdentityNotFound, got %v", err)
	}
	if f.patches != 0 {
		t.Fatalf("expected no patch, got %d", f.patches)
	}
}

func TestTraitName(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected string
	}{
		{name: "flat", input: " Grace Hopper ", expected: "Grace Hopper"},
		{name: "structured", input: map[string]interface{}{"first": "Grace", "last": "Hopper"}, expected: "Grace Hopper"},
		{name: "first only", input: map[string]interface{}{"first": "Grace"}, expected: "Grace"},
		{name: "missing", input: nil, expected: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := traitName(test.input); got != test.expected {
				t.Fatalf("expected %q, got %q", test.expected, got)
			}
		})
	}
}
