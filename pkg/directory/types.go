// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"fmt"

	"github.com/canonical/compliance-service/internal/types"
)

// State is the lifecycle of a directory: Uninitialized -> Loading -> Ready -> Uninitialized.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "uninitialized":
		*s = StateUninitialized
	case "loading":
		*s = StateLoading
	case "ready":
		*s = StateReady
	default:
		return fmt.Errorf("unknown directory state %q", text)
	}

	return nil
}

// ClientInput carries the fields of a new client.
type ClientInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Industry    *string `json:"industry,omitempty" validate:"omitempty,max=255"`
	Size        *string `json:"size,omitempty" validate:"omitempty,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4096"`
	Website     *string `json:"website,omitempty" validate:"omitempty,max=2048"`
	Address     *string `json:"address,omitempty" validate:"omitempty,max=1024"`
	LogoURL     *string `json:"logo_url,omitempty" validate:"omitempty,max=2048"`
}

// MemberView is a membership row as seen by the caller.
type MemberView struct {
	types.Member

	CanChangeRole bool `json:"can_change_role"`
}

// Snapshot is a consistent copy of the directory state.
type Snapshot struct {
	State          State                   `json:"state"`
	Clients        []*types.ClientWithRole `json:"clients"`
	ActiveClientID string                  `json:"active_client_id,omitempty"`
}

func (s Snapshot) ActiveClient() *types.ClientWithRole {
	for _, c := range s.Clients {
		if c.ID == s.ActiveClientID {
			return c
		}
	}

	return nil
}

// CanChangeMemberRole reports whether an actor holding actor may change the role of a member holding target.
// Only owners change roles, and owner rows are never editable.
func CanChangeMemberRole(actor, target types.Role) bool {
	return actor == types.RoleOwner && target != types.RoleOwner
}
