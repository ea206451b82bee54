// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
)

// TokenVerifierInterface resolves a bearer token to the id of the user or machine client it was issued to.
type TokenVerifierInterface interface {
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}
