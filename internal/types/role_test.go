// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"testing"
	"time"
)

func TestRoleAtLeast(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		other    Role
		expected bool
	}{
		{"owner over admin", RoleOwner, RoleAdmin, true},
		{"admin over manager", RoleAdmin, RoleManager, true},
		{"manager over auditor", RoleManager, RoleAuditor, true},
		{"manager over viewer", RoleManager, RoleViewer, true},
		{"viewer not over admin", RoleViewer, RoleAdmin, false},
		{"auditor and viewer incomparable", RoleAuditor, RoleViewer, false},
		{"viewer and auditor incomparable", RoleViewer, RoleAuditor, false},
		{"auditor equals itself", RoleAuditor, RoleAuditor, true},
		{"unknown role", Role("guest"), RoleViewer, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.role.AtLeast(test.other); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestRoleAssignable(t *testing.T) {
	if RoleOwner.Assignable() {
		t.Error("owner must not be assignable")
	}

	for _, r := range AssignableRoles {
		if !r.Assignable() {
			t.Errorf("expected %s to be assignable", r)
		}
	}

	if Role("").Assignable() {
		t.Error("empty role must not be assignable")
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("superuser"); err == nil {
		t.Error("expected error for unknown role")
	}

	r, err := ParseRole("auditor")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != RoleAuditor {
		t.Errorf("expected auditor, got %s", r)
	}
}

func TestInvitationPending(t *testing.T) {
	now := time.Now()
	accepted := now.Add(-time.Minute)

	tests := []struct {
		name       string
		invitation ClientInvitation
		expected   bool
	}{
		{"pending", ClientInvitation{ExpiresAt: now.Add(time.Hour)}, true},
		{"expired", ClientInvitation{ExpiresAt: now.Add(-time.Hour)}, false},
		{"expires now", ClientInvitation{ExpiresAt: now}, false},
		{"accepted", ClientInvitation{ExpiresAt: now.Add(time.Hour), AcceptedAt: &accepted}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.invitation.Pending(now); got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}

func TestClientUpdateEmpty(t *testing.T) {
	if !(ClientUpdate{}).Empty() {
		t.Error("zero update should be empty")
	}

	name := "Acme"
	if (ClientUpdate{Name: &name}).Empty() {
		t.Error("update with name should not be empty")
	}
}
