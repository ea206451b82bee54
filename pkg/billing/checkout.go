// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

var _ CheckoutInterface = (*CheckoutClient)(nil)

// CheckoutClient creates subscription checkout sessions through Stripe.
type CheckoutClient struct {
	successURL string
	cancelURL  string

	sessions session.Client

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (c *CheckoutClient) CreateCheckoutSession(ctx context.Context, priceID, customerID string) (*CheckoutSession, error) {
	ctx, span := c.tracer.Start(ctx, "billing.CheckoutClient.CreateCheckoutSession")
	defer span.End()

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:        stripe.String(c.successURL),
		CancelURL:         stripe.String(c.cancelURL),
		ClientReferenceID: stripe.String(customerID),
	}
	params.Context = ctx

	// profile ids are only a reference, stripe customers are attached directly
	if strings.HasPrefix(customerID, "cus_") {
		params.Customer = stripe.String(customerID)
	}

	s, err := c.sessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			c.logger.Errorf("payment provider answered %d: %s", stripeErr.HTTPStatusCode, stripeErr.Msg)
			return nil, fmt.Errorf("%w: status %d", ErrPaymentUnavailable, stripeErr.HTTPStatusCode)
		}

		c.logger.Errorf("checkout request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}

	if s.URL == "" {
		return nil, fmt.Errorf("%w: checkout session %s has no url", ErrPaymentUnavailable, s.ID)
	}

	return &CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// NewCheckoutClient builds a client against apiURL, the stripe API unless pointed elsewhere.
func NewCheckoutClient(
	apiURL, secretKey, successURL, cancelURL string,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *CheckoutClient {
	c := new(CheckoutClient)

	c.successURL = successURL
	c.cancelURL = cancelURL

	backend := stripe.GetBackendWithConfig(
		stripe.APIBackend,
		&stripe.BackendConfig{
			URL: stripe.String(apiURL),
			HTTPClient: &http.Client{
				Transport: otelhttp.NewTransport(http.DefaultTransport),
				Timeout:   15 * time.Second,
			},
			LeveledLogger:     logger,
			MaxNetworkRetries: stripe.Int64(1),
		},
	)
	c.sessions = session.Client{B: backend, Key: secretKey}

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
