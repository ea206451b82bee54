// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/ory/hydra/v2/oauth2"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

var _ ServiceInterface = (*Service)(nil)

type Service struct {
	storage StorageInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// HandleRegistration mirrors a freshly registered identity into its profile.
func (s *Service) HandleRegistration(ctx context.Context, identity *KratosIdentity) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	if identity == nil || identity.ID == "" || identity.Traits.Email == "" {
		return nil, fmt.Errorf("identity ID or email is empty")
	}

	s.logger.Debugf("mirroring profile of identity %s", identity.ID)

	profile := &types.Profile{
		ID:                 identity.ID,
		Email:              strings.ToLower(identity.Traits.Email),
		Role:               types.RoleViewer,
		SubscriptionStatus: types.SubscriptionTrial,
	}

	if name := strings.TrimSpace(identity.Traits.Name); name != "" {
		profile.FullName = &name
	}

	created, err := s.storage.UpsertProfile(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return created, nil
}

// HandleTokenHook adds the client memberships of the subject to the tokens hydra is about to issue.
func (s *Service) HandleTokenHook(ctx context.Context, req *oauth2.TokenHookRequest) (*TokenHookResponse, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleTokenHook")
	defer span.End()

	if req == nil || req.Session == nil || req.Session.DefaultSession == nil {
		return nil, fmt.Errorf("token hook request has no session")
	}

	userID := req.Session.DefaultSession.Subject
	if userID == "" {
		return nil, fmt.Errorf("token hook session has no subject")
	}

	memberships, err := s.storage.ListMembershipsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	s.logger.Debugf("user %s holds %d client memberships", userID, len(memberships))

	if len(memberships) == 0 {
		return nil, nil
	}

	claims := make([]ClientClaim, 0, len(memberships))
	for _, m := range memberships {
		claims = append(claims, ClientClaim{ID: m.ClientID, Role: string(m.Role)})
	}

	resp := new(TokenHookResponse)
	resp.Session.IDToken = map[string]interface{}{clientsClaim: claims}
	resp.Session.AccessToken = map[string]interface{}{clientsClaim: claims}

	return resp, nil
}

func NewService(
	storage StorageInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	s := new(Service)

	s.storage = storage

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
