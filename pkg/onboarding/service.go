// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/compliance-service/internal/kratos"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

// Service makes sure the recipient of an invitation can sign in to accept it.
type Service struct {
	kratos   KratosClientInterface
	lifetime time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ProvisionInvitee creates an identity for the invited email when none exists and returns a
// recovery link through which the invitee sets a password. Known identities get no link.
func (s *Service) ProvisionInvitee(ctx context.Context, invitation *types.ClientInvitation) (string, error) {
	ctx, span := s.tracer.Start(ctx, "onboarding.Service.ProvisionInvitee")
	defer span.End()

	if invitation == nil || invitation.Email == "" {
		return "", fmt.Errorf("invitation has no email")
	}

	identityID, err := s.kratos.FindIdentityID(ctx, invitation.Email)
	if err != nil {
		s.logger.Errorf("failed to check identity existence: %v", err)
		return "", fmt.Errorf("failed to check identity: %w", err)
	}

	if identityID != "" {
		s.logger.Debugf("identity %s already exists for invitation %s", identityID, invitation.ID)
		return "", nil
	}

	s.logger.Infof("creating identity for invitation %s", invitation.ID)

	identityID, err = s.kratos.CreateIdentity(ctx, invitation.Email, "")
	switch {
	case errors.Is(err, kratos.ErrIdentityExists):
		// registered between the lookup and the create
		s.logger.Debugf("identity for invitation %s was created concurrently", invitation.ID)
		return "", nil
	case err != nil:
		s.logger.Errorf("failed to create identity: %v", err)
		return "", fmt.Errorf("failed to provision identity: %w", err)
	}

	link, err := s.kratos.RecoveryLink(ctx, identityID, s.linkLifetime(invitation))
	if err != nil {
		s.logger.Errorf("failed to create recovery link: %v", err)
		return "", fmt.Errorf("failed to generate recovery link: %w", err)
	}

	return link, nil
}

// linkLifetime bounds the recovery link by the invitation expiry.
func (s *Service) linkLifetime(invitation *types.ClientInvitation) time.Duration {
	lifetime := s.lifetime

	if !invitation.ExpiresAt.IsZero() {
		if remaining := time.Until(invitation.ExpiresAt).Truncate(time.Second); remaining > 0 && remaining < lifetime {
			lifetime = remaining
		}
	}

	return lifetime
}

func NewService(
	kratos KratosClientInterface,
	lifetime time.Duration,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.kratos = kratos
	s.lifetime = lifetime

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
