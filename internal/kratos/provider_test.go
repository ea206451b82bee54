// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

const (
	registrationFlow = `{
		"id": "flow-1", "type": "api", "state": "choose_method",
		"expires_at": "2099-01-01T00:00:00Z", "issued_at": "2026-01-01T00:00:00Z",
		"request_url": "http://kratos/self-service/registration/api",
		"ui": {"action": "http://kratos/self-service/registration?flow=flow-1", "method": "POST", "nodes": []}
	}`
	loginFlow = `{
		"id": "flow-2", "type": "api", "state": "choose_method",
		"expires_at": "2099-01-01T00:00:00Z", "issued_at": "2026-01-01T00:00:00Z",
		"request_url": "http://kratos/self-service/login/api",
		"ui": {"action": "http://kratos/self-service/login?flow=flow-2", "method": "POST", "nodes": []}
	}`
	testIdentity = `{
		"id": "identity-1", "schema_id": "default", "schema_url": "http://kratos/schemas/default",
		"traits": {"email": "alice@example.com", "name": "Alice"}
	}`
	testSession = `{"id": "session-1", "active": true, "expires_at": "2099-01-01T00:00:00Z", "identity": ` + testIdentity + `}`
)

type route struct {
	status int
	body   string
}

func newTestServer(t *testing.T, routes map[string]route) string {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rt, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(rt.status)
		_, _ = w.Write([]byte(rt.body))
	}))
	t.Cleanup(srv.Close)

	return srv.URL
}

func newTestProvider(t *testing.T, routes map[string]route) *Provider {
	t.Helper()

	logger := logging.NewNoopLogger()

	return NewProvider(newTestServer(t, routes), tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
}

func TestProvider_SignUp(t *testing.T) {
	tests := []struct {
		name          string
		routes        map[string]route
		expectSession bool
		expectedErr   error
	}{
		{
			name: "session issued",
			routes: map[string]route{
				"GET /self-service/registration/api": {http.StatusOK, registrationFlow},
				"POST /self-service/registration":    {http.StatusOK, `{"identity": ` + testIdentity + `, "session": ` + testSession + `, "session_token": "token-1"}`},
			},
			expectSession: true,
		},
		{
			name: "address verification required",
			routes: map[string]route{
				"GET /self-service/registration/api": {http.StatusOK, registrationFlow},
				"POST /self-service/registration":    {http.StatusOK, `{"identity": ` + testIdentity + `}`},
			},
		},
		{
			name: "duplicate account",
			routes: map[string]route{
				"GET /self-service/registration/api": {http.StatusOK, registrationFlow},
				"POST /self-service/registration": {http.StatusBadRequest, `{
					"id": "flow-1", "ui": {"action": "", "method": "POST", "nodes": [],
					"messages": [{"id": 4000007, "text": "An account with the same identifier exists already.", "type": "error"}]}
				}`},
			},
			expectedErr: identity.ErrAccountExists,
		},
		{
			name: "short password on node",
			routes: map[string]route{
				"GET /self-service/registration/api": {http.StatusOK, registrationFlow},
				"POST /self-service/registration": {http.StatusBadRequest, `{
					"id": "flow-1", "ui": {"action": "", "method": "POST",
					"nodes": [{"messages": [{"id": 4000032, "text": "The password must be at least 8 characters long.", "type": "error"}]}]}
				}`},
			},
			expectedErr: identity.ErrPasswordTooShort,
		},
		{
			name: "registration disabled",
			routes: map[string]route{
				"GET /self-service/registration/api": {http.StatusBadRequest, `{"error": {"id": "self_service_flow_disabled", "code": 400, "message": "registration disabled"}}`},
			},
			expectedErr: identity.ErrRegistrationDisabled,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := newTestProvider(t, test.routes)

			user, session, err := p.SignUp(context.Background(), "alice@example.com", "password123", "Alice")

			if test.expectedErr != nil {
				if !errors.Is(err, test.expectedErr) {
					t.Fatalf("expected %v, got %v", test.expectedErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if user.ID != "identity-1" || user.Email != "alice@example.com" || user.FullName != "Alice" {
				t.Errorf("unexpected user %+v", user)
			}

			if test.expectSession != (session != nil) {
				t.Fatalf("expected session %v, got %+v", test.expectSession, session)
			}
			if session != nil && session.Token != "token-1" {
				t.Errorf("unexpected token %s", session.Token)
			}
		})
	}
}

func TestProvider_SignIn(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		p := newTestProvider(t, map[string]route{
			"GET /self-service/login/api": {http.StatusOK, loginFlow},
			"POST /self-service/login":    {http.StatusOK, `{"session": ` + testSession + `, "session_token": "token-2"}`},
		})

		session, err := p.SignIn(context.Background(), "alice@example.com", "password123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if session.Token != "token-2" || session.User.ID != "identity-1" {
			t.Errorf("unexpected session %+v", session)
		}
	})

	t.Run("invalid credentials", func(t *testing.T) {
		p := newTestProvider(t, map[string]route{
			"GET /self-service/login/api": {http.StatusOK, loginFlow},
			"POST /self-service/login": {http.StatusBadRequest, `{
				"id": "flow-2", "ui": {"action": "", "method": "POST", "nodes": [],
				"messages": [{"id": 4000006, "text": "The provided credentials are invalid.", "type": "error"}]}
			}`},
		})

		_, err := p.SignIn(context.Background(), "alice@example.com", "wrong")
		if !errors.Is(err, identity.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	})
}

func TestProvider_GetSession(t *testing.T) {
	t.Run("active session", func(t *testing.T) {
		p := newTestProvider(t, map[string]route{
			"GET /sessions/whoami": {http.StatusOK, testSession},
		})

		session, err := p.GetSession(context.Background(), "token-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if session.User.Email != "alice@example.com" || session.Token != "token-1" {
			t.Errorf("unexpected session %+v", session)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		p := newTestProvider(t, map[string]route{
			"GET /sessions/whoami": {http.StatusUnauthorized, `{"error": {"code": 401, "message": "No valid session credentials found"}}`},
		})

		_, err := p.GetSession(context.Background(), "nope")
		if !errors.Is(err, identity.ErrSessionNotFound) {
			t.Fatalf("expected session not found, got %v", err)
		}
	})
}

func TestProvider_SignOut(t *testing.T) {
	p := newTestProvider(t, map[string]route{
		"DELETE /self-service/logout/api": {http.StatusNoContent, ""},
	})

	if err := p.SignOut(context.Background(), "token-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
