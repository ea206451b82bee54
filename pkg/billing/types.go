// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"errors"

	"github.com/canonical/compliance-service/internal/types"
)

var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCheckoutDisabled   = errors.New("checkout is not configured")
	ErrPaymentUnavailable = errors.New("payment provider unavailable")
)

// Config is what a browser needs to talk to the payment provider.
type Config struct {
	PublishableKey string `json:"publishable_key"`
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type CheckoutRequest struct {
	Plan types.Plan `json:"plan" validate:"required,oneof=starter professional enterprise"`
}

// SubscriptionView is the subscription state of the caller's organization.
type SubscriptionView struct {
	Plan         *Plan                    `json:"plan"`
	Status       types.SubscriptionStatus `json:"status"`
	Subscription *types.Subscription      `json:"subscription,omitempty"`
}
