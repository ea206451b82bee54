// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import "fmt"

// Role is the capability level a user holds on a client.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleAuditor Role = "auditor"
	RoleViewer  Role = "viewer"
)

// Roles lists every membership role from the most to the least privileged.
var Roles = []Role{RoleOwner, RoleAdmin, RoleManager, RoleAuditor, RoleViewer}

// AssignableRoles are the roles that can be granted through an invitation or a role change.
var AssignableRoles = []Role{RoleAdmin, RoleManager, RoleAuditor, RoleViewer}

func (r Role) rank() int {
	switch r {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleAuditor, RoleViewer:
		return 1
	default:
		return 0
	}
}

func (r Role) Valid() bool {
	return r.rank() > 0
}

// Assignable reports whether the role can be granted without ownership transfer.
func (r Role) Assignable() bool {
	return r.Valid() && r != RoleOwner
}

// AtLeast reports whether r grants every capability of other.
// Auditor and viewer share a rank but are not comparable with each other.
func (r Role) AtLeast(other Role) bool {
	if !r.Valid() || !other.Valid() {
		return false
	}

	if r.rank() == 1 && other.rank() == 1 {
		return r == other
	}

	return r.rank() >= other.rank()
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("invalid role %q", s)
	}

	return r, nil
}
