// Copyright 2025 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/compliance-service/internal/types"
)

type StorageInterface interface {
	ClientStorageInterface
	InvitationStorageInterface
	ProfileStorageInterface
	CredentialStorageInterface
}

type ClientStorageInterface interface {
	ListClientsByUserID(ctx context.Context, userID string) ([]*types.ClientWithRole, error)
	GetClient(ctx context.Context, id string) (*types.Client, error)
	CreateClient(ctx context.Context, c *types.Client) (*types.Client, error)
	UpdateClient(ctx context.Context, id string, update *types.ClientUpdate) (*types.Client, error)
	ListClientIDs(ctx context.Context) ([]string, error)
	GetMemberRole(ctx context.Context, clientID, userID string) (types.Role, error)
	ListMembers(ctx context.Context, clientID string) ([]*types.Member, error)
	UpdateMemberRole(ctx context.Context, clientID, userID string, role types.Role) error
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.ClientUser, error)
}

type InvitationStorageInterface interface {
	CreateInvitation(ctx context.Context, invitation *types.ClientInvitation) (*types.ClientInvitation, error)
	ListPendingInvitations(ctx context.Context, clientID string) ([]*types.ClientInvitation, error)
	RevokeInvitation(ctx context.Context, clientID, invitationID string) error
	AcceptInvitation(ctx context.Context, token, userID string) (*types.ClientUser, error)
}

type ProfileStorageInterface interface {
	UpsertProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	GetProfile(ctx context.Context, userID string) (*types.Profile, error)
	GetOrganization(ctx context.Context, id string) (*types.Organization, error)
	GetSubscriptionByOrganization(ctx context.Context, organizationID string) (*types.Subscription, error)
}

type CredentialStorageInterface interface {
	CreateCredential(ctx context.Context, c *types.Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*types.Credential, error)
}
