// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

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

var _ AuthorizerInterface = (*RoleAuthorizer)(nil)

// RoleAuthorizer decides access from the membership table alone, used when OpenFGA is disabled.
// The membership rows are the assignments, so the write operations do nothing.
type RoleAuthorizer struct {
	memberships MembershipReaderInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *RoleAuthorizer) ValidateModel(ctx context.Context) error {
	return nil
}

func (a *RoleAuthorizer) CheckClientAccess(ctx context.Context, clientID, userID, permission string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.RoleAuthorizer.CheckClientAccess")
	defer span.End()

	role, err := a.memberships.GetMemberRole(ctx, clientID, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to resolve membership role: %w", err)
	}

	// a relation named after a role is satisfied by that role only
	if r := types.Role(permission); r.Valid() {
		return role == r, nil
	}

	return RoleGrants(role, permission), nil
}

func (a *RoleAuthorizer) AssignClientRole(ctx context.Context, clientID, userID string, role types.Role) error {
	return nil
}

func (a *RoleAuthorizer) RemoveClientRole(ctx context.Context, clientID, userID string, role types.Role) error {
	return nil
}

func NewRoleAuthorizer(memberships MembershipReaderInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *RoleAuthorizer {
	a := new(RoleAuthorizer)

	a.memberships = memberships

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
