// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"
	"testing"

	fga "github.com/openfga/go-sdk"
	"github.com/openfga/go-sdk/client"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/openfga"
	"github.com/canonical/compliance-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authorization -destination ./mock_tracing.go -source=../tracing/interfaces.go

type authorizerMocks struct {
	client *MockAuthzClientInterface
	logger *MockLoggerInterface
}

// newTestAuthorizer expects exactly one span named after method.
func newTestAuthorizer(t *testing.T, method string) (*Authorizer, authorizerMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)

	m := authorizerMocks{
		client: NewMockAuthzClientInterface(ctrl),
		logger: NewMockLoggerInterface(ctrl),
	}

	tracer := NewMockTracingInterface(ctrl)
	tracer.EXPECT().Start(gomock.Any(), "authorization.Authorizer."+method).
		Return(context.Background(), trace.SpanFromContext(context.Background()))

	return NewAuthorizer(m.client, tracer, NewMockMonitorInterface(ctrl), m.logger), m
}

func TestAuthorizer_ValidateModel(t *testing.T) {
	unreachable := errors.New("dial tcp: connection refused")

	testCases := []struct {
		name        string
		equal       bool
		compareErr  error
		expectedErr error
	}{
		{name: "deployed model matches v0", equal: true},
		{name: "deployed model drifted", expectedErr: ErrInvalidAuthModel},
		{name: "store unreachable", compareErr: unreachable, expectedErr: unreachable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, m := newTestAuthorizer(t, "ValidateModel")

			m.client.EXPECT().CompareModel(gomock.Any(), gomock.Any()).Return(tc.equal, tc.compareErr)

			if err := a.ValidateModel(context.Background()); !errors.Is(err, tc.expectedErr) {
				t.Errorf("expected %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestAuthorizer_AssignClientRole(t *testing.T) {
	testCases := []struct {
		name        string
		role        types.Role
		writeErr    error
		expectWrite bool
		expectedErr bool
	}{
		{name: "owner of a new client", role: types.RoleOwner, expectWrite: true},
		{name: "invited auditor", role: types.RoleAuditor, expectWrite: true},
		{name: "unknown role never reaches the store", role: types.Role("guest"), expectedErr: true},
		{name: "store rejects the write", role: types.RoleViewer, writeErr: errors.New("write error"), expectWrite: true, expectedErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, m := newTestAuthorizer(t, "AssignClientRole")

			if tc.expectWrite {
				m.client.EXPECT().WriteTuple(gomock.Any(), UserTuple("u-1"), string(tc.role), ClientTuple("acme")).Return(tc.writeErr)
			}

			err := a.AssignClientRole(context.Background(), "acme", "u-1", tc.role)
			if tc.expectedErr != (err != nil) {
				t.Errorf("expected error %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestAuthorizer_RemoveClientRole(t *testing.T) {
	for _, deleteErr := range []error{nil, errors.New("delete error")} {
		a, m := newTestAuthorizer(t, "RemoveClientRole")

		m.client.EXPECT().DeleteTuple(gomock.Any(), UserTuple("u-1"), "manager", ClientTuple("acme")).Return(deleteErr)

		err := a.RemoveClientRole(context.Background(), "acme", "u-1", types.RoleManager)
		if (deleteErr != nil) != (err != nil) {
			t.Errorf("expected error %v, got %v", deleteErr, err)
		}
	}
}

func TestAuthorizer_CheckClientAccess(t *testing.T) {
	testCases := []struct {
		name       string
		permission string
		allowed    bool
		checkErr   error
	}{
		{name: "admin may edit", permission: CAN_EDIT_PERMISSION, allowed: true},
		{name: "viewer may not invite", permission: CAN_INVITE_PERMISSION},
		{name: "check fails closed", permission: CAN_MANAGE_MEMBERS_PERMISSION, allowed: true, checkErr: errors.New("timeout")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, m := newTestAuthorizer(t, "CheckClientAccess")

			m.client.EXPECT().Check(gomock.Any(), UserTuple("u-1"), tc.permission, ClientTuple("acme")).Return(tc.allowed, tc.checkErr)

			allowed, err := a.CheckClientAccess(context.Background(), "acme", "u-1", tc.permission)
			if (tc.checkErr != nil) != (err != nil) {
				t.Fatalf("expected error %v, got %v", tc.checkErr, err)
			}

			if expected := tc.allowed && tc.checkErr == nil; allowed != expected {
				t.Errorf("expected allowed %v, got %v", expected, allowed)
			}
		})
	}
}

func readResponse(token string, tuples ...openfga.Tuple) *client.ClientReadResponse {
	r := &client.ClientReadResponse{Tuples: []fga.Tuple{}, ContinuationToken: token}
	for _, t := range tuples {
		r.Tuples = append(r.Tuples, fga.Tuple{Key: fga.TupleKey{User: t.User, Relation: t.Relation, Object: t.Object}})
	}

	return r
}

func member(userID string, role types.Role) *types.Member {
	return &types.Member{ClientUser: types.ClientUser{ClientID: "acme", UserID: userID, Role: role}}
}

func TestAuthorizer_SyncClientRoles(t *testing.T) {
	owner := *openfga.NewTuple(UserTuple("alice"), "owner", ClientTuple("acme"))
	oldRole := *openfga.NewTuple(UserTuple("bob"), "viewer", ClientTuple("acme"))
	newRole := *openfga.NewTuple(UserTuple("bob"), "auditor", ClientTuple("acme"))
	departed := *openfga.NewTuple(UserTuple("carol"), "admin", ClientTuple("acme"))

	testCases := []struct {
		name        string
		members     []*types.Member
		setupMocks  func(*MockAuthzClientInterface, *MockLoggerInterface)
		expected    *SyncResult
		expectedErr bool
	}{
		{
			name:    "already in sync",
			members: []*types.Member{member("alice", types.RoleOwner)},
			setupMocks: func(c *MockAuthzClientInterface, _ *MockLoggerInterface) {
				c.EXPECT().ReadTuples(gomock.Any(), "", "", ClientTuple("acme"), "").Return(readResponse("", owner), nil)
			},
			expected: &SyncResult{},
		},
		{
			name:    "role change and departed member across pages",
			members: []*types.Member{member("alice", types.RoleOwner), member("bob", types.RoleAuditor)},
			setupMocks: func(c *MockAuthzClientInterface, _ *MockLoggerInterface) {
				c.EXPECT().ReadTuples(gomock.Any(), "", "", ClientTuple("acme"), "").Return(readResponse("page-2", owner, oldRole), nil)
				c.EXPECT().ReadTuples(gomock.Any(), "", "", ClientTuple("acme"), "page-2").Return(readResponse("", departed), nil)
				c.EXPECT().WriteTuples(gomock.Any(), newRole).Return(nil)
				c.EXPECT().DeleteTuples(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, tuples ...openfga.Tuple) error {
						if len(tuples) != 2 {
							t.Errorf("expected 2 stale tuples, got %v", tuples)
						}
						return nil
					},
				)
			},
			expected: &SyncResult{Written: 1, Deleted: 2},
		},
		{
			name:    "unknown role is skipped",
			members: []*types.Member{member("alice", types.RoleOwner), member("dave", types.Role("guest"))},
			setupMocks: func(c *MockAuthzClientInterface, l *MockLoggerInterface) {
				c.EXPECT().ReadTuples(gomock.Any(), "", "", ClientTuple("acme"), "").Return(readResponse("", owner), nil)
				l.EXPECT().Warnf(gomock.Any(), gomock.Any())
			},
			expected: &SyncResult{},
		},
		{
			name:    "read failure",
			members: []*types.Member{member("alice", types.RoleOwner)},
			setupMocks: func(c *MockAuthzClientInterface, _ *MockLoggerInterface) {
				c.EXPECT().ReadTuples(gomock.Any(), "", "", ClientTuple("acme"), "").Return(nil, errors.New("unavailable"))
			},
			expectedErr: true,
		},
		{
			name:    "write failure",
			members: []*types.Member{member("alice", types.RoleOwner)},
			setupMocks: func(c *MockAuthzClientInterface, _ *MockLoggerInterface) {
				c.EXPECT().ReadTuples(gomock.Any(), "", "", ClientTuple("acme"), "").Return(readResponse(""), nil)
				c.EXPECT().WriteTuples(gomock.Any(), owner).Return(errors.New("unavailable"))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, m := newTestAuthorizer(t, "SyncClientRoles")
			tc.setupMocks(m.client, m.logger)

			result, err := a.SyncClientRoles(context.Background(), "acme", tc.members)

			if tc.expectedErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if *result != *tc.expected {
				t.Errorf("expected %+v, got %+v", tc.expected, result)
			}
		})
	}
}
