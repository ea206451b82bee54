// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"

	"github.com/canonical/compliance-service/internal/types"
)

// ProviderInterface is the authentication backend behind a session store.
type ProviderInterface interface {
	SignUp(ctx context.Context, email, password, fullName string) (*types.User, *types.Session, error)
	SignIn(ctx context.Context, email, password string) (*types.Session, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*types.Session, error)
}

type ProfileStorageInterface interface {
	UpsertProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	GetProfile(ctx context.Context, userID string) (*types.Profile, error)
}
