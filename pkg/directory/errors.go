// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import "errors"

var (
	ErrNoUser             = errors.New("no signed in user")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("operation not permitted")
	ErrClientNotFound     = errors.New("client not found")
	ErrMemberNotFound     = errors.New("member not found")
	ErrInvitationPending  = errors.New("a pending invitation already exists for this email")
	ErrInvitationNotFound = errors.New("invitation not found")
	ErrInvitationExpired  = errors.New("invitation expired")
	ErrInvitationAccepted = errors.New("invitation already accepted")
)
