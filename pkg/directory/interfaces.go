// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"

	"github.com/canonical/compliance-service/internal/types"
)

// StorageInterface is the backend query surface the directory proxies to.
type StorageInterface interface {
	ListClientsByUserID(ctx context.Context, userID string) ([]*types.ClientWithRole, error)
	CreateClient(ctx context.Context, c *types.Client) (*types.Client, error)
	UpdateClient(ctx context.Context, id string, update *types.ClientUpdate) (*types.Client, error)
	GetMemberRole(ctx context.Context, clientID, userID string) (types.Role, error)
	ListMembers(ctx context.Context, clientID string) ([]*types.Member, error)
	UpdateMemberRole(ctx context.Context, clientID, userID string, role types.Role) error
	CreateInvitation(ctx context.Context, invitation *types.ClientInvitation) (*types.ClientInvitation, error)
	ListPendingInvitations(ctx context.Context, clientID string) ([]*types.ClientInvitation, error)
	RevokeInvitation(ctx context.Context, clientID, invitationID string) error
	AcceptInvitation(ctx context.Context, token, userID string) (*types.ClientUser, error)
}

// AuthorizerInterface is consulted before every mutating or member-scoped operation.
type AuthorizerInterface interface {
	CheckClientAccess(ctx context.Context, clientID, userID, permission string) (bool, error)
	AssignClientRole(ctx context.Context, clientID, userID string, role types.Role) error
	RemoveClientRole(ctx context.Context, clientID, userID string, role types.Role) error
}

type SelectionStoreInterface interface {
	Load(ctx context.Context, userID string) (string, error)
	Save(ctx context.Context, userID, clientID string) error
	Clear(ctx context.Context, userID string) error
}

// OnboardingInterface provisions an identity for an invited email address.
type OnboardingInterface interface {
	ProvisionInvitee(ctx context.Context, invitation *types.ClientInvitation) (string, error)
}

// DirectoryInterface is the surface the HTTP handlers depend on.
type DirectoryInterface interface {
	Snapshot() Snapshot
	Refresh(ctx context.Context) error
	SwitchClient(ctx context.Context, clientID string) bool
	CreateClient(ctx context.Context, input *ClientInput) (*types.Client, error)
	UpdateClient(ctx context.Context, clientID string, update *types.ClientUpdate) (*types.Client, error)
	InviteUserToClient(ctx context.Context, clientID, email string, role types.Role) (*types.ClientInvitation, error)
	AcceptInvitation(ctx context.Context, token string) (*types.ClientUser, error)
	ListMembers(ctx context.Context, clientID string) ([]*MemberView, error)
	UpdateMemberRole(ctx context.Context, clientID, userID string, role types.Role) error
	ListPendingInvitations(ctx context.Context, clientID string) ([]*types.ClientInvitation, error)
	RevokeInvitation(ctx context.Context, clientID, invitationID string) error
}

type ManagerInterface interface {
	ForUser(ctx context.Context, userID string) DirectoryInterface
}
