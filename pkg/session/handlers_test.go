// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/types"
	"github.com/canonical/compliance-service/pkg/authentication"
)

func newTestRouter(m *mocks) *chi.Mux {
	api := NewAPI(m.registry(), m.logger)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)
	mux.Group(func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				token := strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
				next.ServeHTTP(w, req.WithContext(authentication.WithToken(req.Context(), token)))
			})
		})
		api.RegisterAuthenticatedEndpoints(r)
	})

	return mux
}

func TestAPI_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*mocks)
		expectedStatus int
		validate       func(*testing.T, *SignUpResponse)
	}{
		{
			name: "session issued",
			body: `{"email": "alice@example.com", "password": "secret123", "full_name": "Alice"}`,
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), "alice@example.com", "secret123", "Alice").
					Return(&alice, &types.Session{Token: "token-1", User: alice}, nil)
				m.profiles.EXPECT().UpsertProfile(gomock.Any(), gomock.Any()).Return(&types.Profile{ID: alice.ID}, nil)
			},
			expectedStatus: http.StatusCreated,
			validate: func(t *testing.T, resp *SignUpResponse) {
				if resp.ConfirmationRequired || resp.Session == nil || resp.Session.Token != "token-1" {
					t.Errorf("unexpected response %+v", resp)
				}
			},
		},
		{
			name: "confirmation required",
			body: `{"email": "alice@example.com", "password": "secret123", "full_name": "Alice"}`,
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), "alice@example.com", "secret123", "Alice").Return(&alice, nil, nil)
				m.profiles.EXPECT().UpsertProfile(gomock.Any(), gomock.Any()).Return(&types.Profile{ID: alice.ID}, nil)
				m.logger.EXPECT().Infof(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusCreated,
			validate: func(t *testing.T, resp *SignUpResponse) {
				if !resp.ConfirmationRequired || resp.Session != nil {
					t.Errorf("unexpected response %+v", resp)
				}
			},
		},
		{
			name:           "missing password",
			body:           `{"email": "alice@example.com"}`,
			setupMocks:     func(*mocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "account exists",
			body: `{"email": "alice@example.com", "password": "secret123"}`,
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), "alice@example.com", "secret123", "").Return(nil, nil, identity.ErrAccountExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "registration disabled",
			body: `{"email": "alice@example.com", "password": "secret123"}`,
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), "alice@example.com", "secret123", "").Return(nil, nil, errors.New("Signups not allowed for this instance"))
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "generic failure",
			body: `{"email": "alice@example.com", "password": "secret123"}`,
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), "alice@example.com", "secret123", "").Return(nil, nil, errors.New("boom"))
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMocks(m)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/auth/signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			newTestRouter(m).ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.validate == nil {
				return
			}

			var body struct {
				Data SignUpResponse `json:"data"`
			}
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			tt.validate(t, &body.Data)
		})
	}
}

func TestAPI_SignInMeSignOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	m.provider.EXPECT().SignIn(gomock.Any(), "alice@example.com", "wrong").Return(nil, identity.ErrInvalidCredentials)
	m.provider.EXPECT().SignIn(gomock.Any(), "alice@example.com", "secret123").
		Return(&types.Session{Token: "token-1", User: alice, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), alice.ID).Return(&types.Profile{ID: alice.ID, Email: alice.Email}, nil)
	m.provider.EXPECT().SignOut(gomock.Any(), "token-1").Return(nil)
	m.provider.EXPECT().GetSession(gomock.Any(), "token-1").Return(nil, identity.ErrSessionNotFound)

	router := newTestRouter(m)

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	if w := do(http.MethodPost, "/api/v0/auth/signin", "", `{"email": "alice@example.com", "password": "wrong"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	if w := do(http.MethodPost, "/api/v0/auth/signin", "", `{"email": "alice@example.com", "password": "secret123"}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w := do(http.MethodGet, "/api/v0/auth/me", "token-1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var me struct {
		Data MeResponse `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&me); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if me.Data.User == nil || me.Data.User.ID != alice.ID || me.Data.Profile == nil || me.Data.Loading {
		t.Errorf("unexpected me response %+v", me.Data)
	}

	if w := do(http.MethodPost, "/api/v0/auth/signout", "token-1", ""); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	if w := do(http.MethodGet, "/api/v0/auth/me", "token-1", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after sign out, got %d", w.Code)
	}
}

