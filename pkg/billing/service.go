// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	catalog        *Catalog
	storage        StorageInterface
	checkout       CheckoutInterface
	publishableKey string

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Service) ListPlans(ctx context.Context) []*Plan {
	return s.catalog.Plans()
}

func (s *Service) Config(ctx context.Context) *Config {
	return &Config{PublishableKey: s.publishableKey}
}

// GetSubscription resolves the plan of the organization the user belongs to.
// Without an organization or a subscription row the profile fields are used, starter being the fallback plan.
func (s *Service) GetSubscription(ctx context.Context, userID string) (*SubscriptionView, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.GetSubscription")
	defer span.End()

	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscription, err := s.subscription(ctx, profile)
	if err != nil {
		return nil, err
	}

	view := &SubscriptionView{Status: profile.SubscriptionStatus, Subscription: subscription}

	planID := types.PlanStarter
	switch {
	case subscription != nil:
		planID = subscription.Plan
		view.Status = subscription.Status
	case profile.SubscriptionPlan != nil:
		planID = *profile.SubscriptionPlan
	}

	if plan, ok := s.catalog.Plan(planID); ok {
		view.Plan = plan
	} else {
		s.logger.Warnf("subscription of user %s references unknown plan %s", userID, planID)
	}

	return view, nil
}

// CreateCheckout opens a checkout session for plan, billed to the organization customer when known.
func (s *Service) CreateCheckout(ctx context.Context, userID string, planID types.Plan) (*CheckoutSession, error) {
	ctx, span := s.tracer.Start(ctx, "billing.Service.CreateCheckout")
	defer span.End()

	if s.checkout == nil {
		return nil, ErrCheckoutDisabled
	}

	plan, ok := s.catalog.Plan(planID)
	if !ok {
		return nil, ErrPlanNotFound
	}

	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	subscription, err := s.subscription(ctx, profile)
	if err != nil {
		return nil, err
	}

	customerID := profile.ID
	if subscription != nil && subscription.CustomerID != nil && *subscription.CustomerID != "" {
		customerID = *subscription.CustomerID
	}

	session, err := s.checkout.CreateCheckoutSession(ctx, plan.PriceID, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.Infof("checkout session %s opened for user %s on plan %s", session.ID, userID, plan.ID)

	return session, nil
}

func (s *Service) profile(ctx context.Context, userID string) (*types.Profile, error) {
	profile, err := s.storage.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		s.logger.Errorf("failed to get profile of user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profile, nil
}

func (s *Service) subscription(ctx context.Context, profile *types.Profile) (*types.Subscription, error) {
	if profile.OrganizationID == nil || *profile.OrganizationID == "" {
		return nil, nil
	}

	subscription, err := s.storage.GetSubscriptionByOrganization(ctx, *profile.OrganizationID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Errorf("failed to get subscription of organization %s: %v", *profile.OrganizationID, err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return subscription, nil
}

// NewService builds the billing service, checkout may be nil when no payment secret is configured.
func NewService(
	catalog *Catalog,
	storage StorageInterface,
	checkout CheckoutInterface,
	publishableKey string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.catalog = catalog
	s.storage = storage
	s.checkout = checkout
	s.publishableKey = publishableKey

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
