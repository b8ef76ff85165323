// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"github.com/ludquiz-hash/visiocaret-sub000/internal/types"
)

const (
	OWNER_RELATION = "owner"
	ADMIN_RELATION = "admin"
	STAFF_RELATION = "staff"

	CAN_VIEW_PERMISSION         = "can_view"
	CAN_INVITE_STAFF_PERMISSION = "can_invite_staff"
	CAN_INVITE_ADMIN_PERMISSION = "can_invite_admin"
	CAN_MANAGE_ROLES_PERMISSION = "can_manage_roles"
	CAN_REMOVE_STAFF_PERMISSION = "can_remove_staff"
	CAN_REMOVE_ADMIN_PERMISSION = "can_remove_admin"
)

// minimum role holding each permission, mirrors the openfga model
var permissionRoles = map[string]types.Role{
	CAN_VIEW_PERMISSION:         types.RoleStaff,
	CAN_INVITE_STAFF_PERMISSION: types.RoleAdmin,
	CAN_INVITE_ADMIN_PERMISSION: types.RoleOwner,
	CAN_MANAGE_ROLES_PERMISSION: types.RoleOwner,
	CAN_REMOVE_STAFF_PERMISSION: types.RoleAdmin,
	CAN_REMOVE_ADMIN_PERMISSION: types.RoleOwner,
}

func rank(r types.Role) int {
	switch r {
	case types.RoleOwner:
		return 3
	case types.RoleAdmin:
		return 2
	case types.RoleStaff:
		return 1
	}
	return 0
}

// RoleAllows evaluates permission for role without reaching openfga.
func RoleAllows(role types.Role, permission string) bool {
	required, ok := permissionRoles[permission]
	if !ok {
		return false
	}
	return rank(role) > 0 && rank(role) >= rank(required)
}

// RemovePermission is the permission needed to deactivate a member holding target.
func RemovePermission(target types.Role) string {
	if target == types.RoleStaff {
		return CAN_REMOVE_STAFF_PERMISSION
	}
	return CAN_REMOVE_ADMIN_PERMISSION
}

// InvitePermission is the permission needed to invite a member as role.
func InvitePermission(role types.Role) string {
	if role == types.RoleStaff {
		return CAN_INVITE_STAFF_PERMISSION
	}
	return CAN_INVITE_ADMIN_PERMISSION
}

func UserTuple(userId string) string {
	return "user:" + userId
}

func GarageTuple(garageId string) string {
	return "garage:" + garageId
}
