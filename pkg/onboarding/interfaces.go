// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"time"
)

// KratosClientInterface is the subset of the kratos admin client used to provision invitees.
type KratosClientInterface interface {
	FindIdentityID(ctx context.Context, email string) (string, error)
	CreateIdentity(ctx context.Context, email, fullName string) (string, error)
	RecoveryLink(ctx context.Context, identityID string, lifetime time.Duration) (string, error)
}
