// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/compliance-service/internal/types"
)

// StorageInterface is the subset of internal/storage used by the webhooks.
type StorageInterface interface {
	UpsertProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	ListMembershipsByUserID(ctx context.Context, userID string) ([]*types.ClientUser, error)
}

type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identity *KratosIdentity) (*types.Profile, error)
	HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error)
}
