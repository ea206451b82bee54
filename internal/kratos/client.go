// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	ory "github.com/ory/client-go"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

var ErrIdentityExists = errors.New("identity already exists")

// Client provisions identities through the Kratos admin API.
type Client struct {
	admin ory.IdentityAPI

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// FindIdentityID returns the id of the identity using email as credential identifier, or an empty string.
func (c *Client) FindIdentityID(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.FindIdentityID")
	defer span.End()

	// NOTE: empty page token because of https://github.com/ory/sdk/issues/461
	identities, r, err := c.admin.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	switch {
	case r != nil && r.StatusCode == http.StatusNotFound:
		return "", nil
	case err != nil:
		return "", fmt.Errorf("failed to list identities: %w", err)
	}

	if len(identities) == 0 {
		return "", nil
	}

	return identities[0].Id, nil
}

// CreateIdentity creates an identity with the default schema.
// A conflicting credential identifier yields ErrIdentityExists.
func (c *Client) CreateIdentity(ctx context.Context, email, fullName string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.CreateIdentity")
	defer span.End()

	body := ory.CreateIdentityBody{
		SchemaId: defaultSchemaID,
		Traits:   identityTraits(email, fullName),
	}

	identity, r, err := c.admin.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	if r != nil && r.StatusCode == http.StatusConflict {
		return "", ErrIdentityExists
	}

	if err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	c.logger.Debugf("created identity %s", identity.Id)

	return identity.Id, nil
}

// RecoveryLink issues an admin recovery link valid for lifetime.
func (c *Client) RecoveryLink(ctx context.Context, identityID string, lifetime time.Duration) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.RecoveryLink")
	defer span.End()

	expiresIn := lifetime.String()
	body := ory.CreateRecoveryLinkForIdentityBody{
		IdentityId: identityID,
		ExpiresIn:  &expiresIn,
	}

	link, _, err := c.admin.CreateRecoveryLinkForIdentity(ctx).CreateRecoveryLinkForIdentityBody(body).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to create recovery link: %w", err)
	}

	return link.RecoveryLink, nil
}

func NewClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	c := new(Client)

	c.admin = newAPIClient(kratosAdminURL).IdentityAPI

	c.tracer = tracer
	c.monitor = monitor
	c.logger = logger

	return c
}
