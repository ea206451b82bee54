// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"slices"

	"github.com/canonical/compliance-service/internal/types"
)

const (
	CLIENT_TYPE = "client"

	CAN_VIEW_PERMISSION           = "can_view"
	CAN_EDIT_PERMISSION           = "can_edit"
	CAN_INVITE_PERMISSION         = "can_invite"
	CAN_MANAGE_MEMBERS_PERMISSION = "can_manage_members"
)

// permissionRoles mirrors the computed relations of schema/v0.fga.
var permissionRoles = map[string][]types.Role{
	CAN_VIEW_PERMISSION:           types.Roles,
	CAN_EDIT_PERMISSION:           {types.RoleOwner, types.RoleAdmin},
	CAN_INVITE_PERMISSION:         {types.RoleOwner, types.RoleAdmin},
	CAN_MANAGE_MEMBERS_PERMISSION: {types.RoleOwner},
}

// RoleGrants reports whether holding role on a client grants permission.
func RoleGrants(role types.Role, permission string) bool {
	return slices.Contains(permissionRoles[permission], role)
}

func UserTuple(userId string) string {
	return "user:" + userId
}

func ClientTuple(clientId string) string {
	return CLIENT_TYPE + ":" + clientId
}
