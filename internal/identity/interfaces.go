// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"

	"github.com/canonical/compliance-service/internal/types"
)

// ProviderInterface is the contract of an authentication backend.
// SignUp returns a nil session when the provider requires email confirmation first.
type ProviderInterface interface {
	SignUp(ctx context.Context, email, password, fullName string) (*types.User, *types.Session, error)
	SignIn(ctx context.Context, email, password string) (*types.Session, error)
	SignOut(ctx context.Context, token string) error
	GetSession(ctx context.Context, token string) (*types.Session, error)
}
