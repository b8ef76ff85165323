// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"strings"
	"time"
)

type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

// Valid reports whether r is one of the known membership roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleStaff:
		return true
	}
	return false
}

type Plan string

const (
	PlanStarter  Plan = "starter"
	PlanPro      Plan = "pro"
	PlanBusiness Plan = "business"
)

func (p Plan) Valid() bool {
	switch p {
	case PlanStarter, PlanPro, PlanBusiness:
		return true
	}
	return false
}

type Garage struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	Plan        Plan      `db:"plan" json:"plan"`
	TrialEndsAt time.Time `db:"trial_ends_at" json:"trial_ends_at"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type Membership struct {
	ID        string    `db:"id" json:"id"`
	GarageID  string    `db:"garage_id" json:"garage_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	UserEmail string    `db:"user_email" json:"user_email"`
	UserName  string    `db:"user_name" json:"user_name"`
	Role      Role      `db:"role" json:"role"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// MembershipFilter selects memberships; zero-valued fields are ignored.
type MembershipFilter struct {
	GarageID  string
	UserID    string
	UserEmail string
	Active    *bool
}

// MembershipPatch carries the mutable membership fields, nil means unchanged.
type MembershipPatch struct {
	Role   *Role
	Active *bool
}

type GarageFilter struct {
	ID      string
	OwnerID string
}

// ProfileCache is the denormalized active garage hint kept on the identity record.
// It may lag behind the memberships table and is never authoritative.
type ProfileCache struct {
	ActiveGarageID   string `json:"activeGarageId,omitempty"`
	ActiveGarageRole Role   `json:"activeGarageRole,omitempty"`
}

func (p ProfileCache) Matches(garageID string, role Role) bool {
	return p.ActiveGarageID == garageID && p.ActiveGarageRole == role
}

// User is the per-request session view of an authenticated identity.
type User struct {
	ID      string
	Email   string
	Name    string
	Profile ProfileCache
}

// SameEmail compares addresses the way memberships store them.
func (u *User) SameEmail(email string) bool {
	return u != nil && u.Email != "" && strings.EqualFold(u.Email, email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func BoolPtr(b bool) *bool {
	return &b
}

func RolePtr(r Role) *Role {
	return &r
}
