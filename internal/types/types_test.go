// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "testing"

func TestRoleAndPlanValid(t *testing.T) {
	for _, r := range []Role{RoleOwner, RoleAdmin, RoleStaff} {
		if !r.Valid() {
			t.Errorf("expected %q to be valid", r)
		}
	}

	for _, r := range []Role{"", "member", "Owner"} {
		if r.Valid() {
			t.Errorf("expected %q to be invalid", r)
		}
	}

	for _, p := range []Plan{PlanStarter, PlanPro, PlanBusiness} {
		if !p.Valid() {
			t.Errorf("expected %q to be valid", p)
		}
	}

	if Plan("enterprise").Valid() {
		t.Error("expected unknown plan to be invalid")
	}
}

func TestProfileCacheMatches(t *testing.T) {
	p := ProfileCache{ActiveGarageID: "g1", ActiveGarageRole: RoleAdmin}

	if !p.Matches("g1", RoleAdmin) {
		t.Error("expected identical profile to match")
	}

	if p.Matches("g1", RoleStaff) {
		t.Error("expected role change to be detected")
	}

	if p.Matches("g2", RoleAdmin) {
		t.Error("expected garage change to be detected")
	}

	if (ProfileCache{}).Matches("g1", RoleAdmin) {
		t.Error("expected empty profile not to match")
	}
}

func TestUserSameEmail(t *testing.T) {
	tests := []struct {
		name     string
		user     *User
		email    string
		expected bool
	}{
		{"case insensitive", &User{Email: "carol@example.com"}, "Carol@Example.com", true},
		{"different address", &User{Email: "carol@example.com"}, "dave@example.com", false},
		{"user without email", &User{}, "", false},
		{"nil user", nil, "carol@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.SameEmail(tt.email); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  Carol@Example.COM "); got != "carol@example.com" {
		t.Errorf("unexpected normalized email %q", got)
	}
}
