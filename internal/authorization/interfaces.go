// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"

	"github.com/canonical/compliance-service/internal/openfga"
	"github.com/canonical/compliance-service/internal/types"
)

type AuthorizerInterface interface {
	ValidateModel(context.Context) error
	CheckClientAccess(ctx context.Context, clientID, userID, permission string) (bool, error)
	AssignClientRole(ctx context.Context, clientID, userID string, role types.Role) error
	RemoveClientRole(ctx context.Context, clientID, userID string, role types.Role) error
}

type AuthzClientInterface interface {
	Check(context.Context, string, string, string, ...openfga.Tuple) (bool, error)
	CompareModel(context.Context, fga.AuthorizationModel) (bool, error)
	ReadTuples(context.Context, string, string, string, string) (*client.ClientReadResponse, error)
	WriteTuple(ctx context.Context, user, relation, object string) error
	WriteTuples(context.Context, ...openfga.Tuple) error
	DeleteTuple(ctx context.Context, user, relation, object string) error
	DeleteTuples(context.Context, ...openfga.Tuple) error
}

// MembershipReaderInterface resolves the role of a user on a client from the membership table.
type MembershipReaderInterface interface {
	GetMemberRole(ctx context.Context, clientID, userID string) (types.Role, error)
}
