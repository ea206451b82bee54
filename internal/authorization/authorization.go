// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/openfga"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

var ErrInvalidAuthModel = errors.New("invalid authorization model schema")

var _ AuthorizerInterface = (*Authorizer)(nil)

// SyncResult counts the tuples touched while reconciling one client.
type SyncResult struct {
	Written int `json:"written"`
	Deleted int `json:"deleted"`
}

// Authorizer answers client permission checks from OpenFGA. Every membership row
// is mirrored as one "user:<id> <role> client:<id>" tuple.
type Authorizer struct {
	client AuthzClientInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// ValidateModel fails when the configured model differs from the one embedded in the binary.
func (a *Authorizer) ValidateModel(ctx context.Context) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.ValidateModel")
	defer span.End()

	eq, err := a.client.CompareModel(ctx, *NewAuthorizationModelProvider("v0").GetModel())
	if err != nil {
		return fmt.Errorf("failed to read authorization model: %w", err)
	}

	if !eq {
		return ErrInvalidAuthModel
	}

	return nil
}

func (a *Authorizer) CheckClientAccess(ctx context.Context, clientID, userID, permission string) (bool, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.CheckClientAccess")
	defer span.End()

	allowed, err := a.client.Check(ctx, UserTuple(userID), permission, ClientTuple(clientID))
	if err != nil {
		return false, fmt.Errorf("failed to check %s on client %s: %w", permission, clientID, err)
	}

	return allowed, nil
}

func (a *Authorizer) AssignClientRole(ctx context.Context, clientID, userID string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.AssignClientRole")
	defer span.End()

	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}

	return a.client.WriteTuple(ctx, UserTuple(userID), string(role), ClientTuple(clientID))
}

func (a *Authorizer) RemoveClientRole(ctx context.Context, clientID, userID string, role types.Role) error {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.RemoveClientRole")
	defer span.End()

	if !role.Valid() {
		return fmt.Errorf("invalid role %q", role)
	}

	return a.client.DeleteTuple(ctx, UserTuple(userID), string(role), ClientTuple(clientID))
}

// clientTuples pages through every role tuple stored on the client object.
func (a *Authorizer) clientTuples(ctx context.Context, clientID string) (map[openfga.Tuple]bool, error) {
	stored := make(map[openfga.Tuple]bool)
	object := ClientTuple(clientID)

	for token := ""; ; {
		r, err := a.client.ReadTuples(ctx, "", "", object, token)
		if err != nil {
			return nil, fmt.Errorf("failed to read tuples of %s: %w", object, err)
		}

		for _, t := range r.Tuples {
			stored[*openfga.NewTuple(t.Key.User, t.Key.Relation, t.Key.Object)] = true
		}

		if r.ContinuationToken == "" || len(r.Tuples) == 0 {
			return stored, nil
		}

		token = r.ContinuationToken
	}
}

// SyncClientRoles rewrites the OpenFGA tuples of a client so they match members exactly.
// It repairs drift left by a failed write after the membership row was committed.
func (a *Authorizer) SyncClientRoles(ctx context.Context, clientID string, members []*types.Member) (*SyncResult, error) {
	ctx, span := a.tracer.Start(ctx, "authorization.Authorizer.SyncClientRoles")
	defer span.End()

	stored, err := a.clientTuples(ctx, clientID)
	if err != nil {
		return nil, err
	}

	var missing []openfga.Tuple

	for _, m := range members {
		if !m.Role.Valid() {
			a.logger.Warnf("skipping member %s of client %s with unknown role %q", m.UserID, clientID, m.Role)
			continue
		}

		t := *openfga.NewTuple(UserTuple(m.UserID), string(m.Role), ClientTuple(clientID))
		if stored[t] {
			delete(stored, t)
			continue
		}

		missing = append(missing, t)
	}

	stale := make([]openfga.Tuple, 0, len(stored))
	for t := range stored {
		stale = append(stale, t)
	}

	if len(missing) > 0 {
		if err := a.client.WriteTuples(ctx, missing...); err != nil {
			return nil, fmt.Errorf("failed to write role tuples: %w", err)
		}
	}

	if len(stale) > 0 {
		if err := a.client.DeleteTuples(ctx, stale...); err != nil {
			return nil, fmt.Errorf("failed to delete stale role tuples: %w", err)
		}
	}

	return &SyncResult{Written: len(missing), Deleted: len(stale)}, nil
}

func NewAuthorizer(client AuthzClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	a := new(Authorizer)

	a.client = client
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
