// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"

	"github.com/canonical/compliance-service/internal/types"
)

type StorageInterface interface {
	GetProfile(ctx context.Context, userID string) (*types.Profile, error)
	GetSubscriptionByOrganization(ctx context.Context, organizationID string) (*types.Subscription, error)
}

// CheckoutInterface creates hosted checkout sessions on the payment provider.
type CheckoutInterface interface {
	CreateCheckoutSession(ctx context.Context, priceID, customerID string) (*CheckoutSession, error)
}

type ServiceInterface interface {
	ListPlans(ctx context.Context) []*Plan
	Config(ctx context.Context) *Config
	GetSubscription(ctx context.Context, userID string) (*SubscriptionView, error)
	CreateCheckout(ctx context.Context, userID string, plan types.Plan) (*CheckoutSession, error)
}
