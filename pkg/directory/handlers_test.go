// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	httptypes "github.com/canonical/compliance-service/internal/http/types"
	"github.com/canonical/compliance-service/internal/types"
	"github.com/canonical/compliance-service/pkg/authentication"
)

type apiMocks struct {
	manager    *MockManagerInterface
	directory  *MockDirectoryInterface
	onboarding *MockOnboardingInterface
	logger     *MockLoggerInterface
}

func newTestAPI(t *testing.T, withOnboarding bool) (*chi.Mux, *apiMocks) {
	ctrl := gomock.NewController(t)

	m := &apiMocks{
		manager:    NewMockManagerInterface(ctrl),
		directory:  NewMockDirectoryInterface(ctrl),
		onboarding: NewMockOnboardingInterface(ctrl),
		logger:     NewMockLoggerInterface(ctrl),
	}

	var onboarding OnboardingInterface
	if withOnboarding {
		onboarding = m.onboarding
	}

	mux := chi.NewMux()
	mux.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user := r.Header.Get("X-Test-User"); user != "" {
				r = r.WithContext(authentication.WithUserID(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	})
	NewAPI(m.manager, onboarding, m.logger).RegisterEndpoints(mux)

	return mux, m
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Test-User", userID)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	return w
}

func TestAPI_Unauthenticated(t *testing.T) {
	mux, _ := newTestAPI(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/clients", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAPI_ListClients(t *testing.T) {
	mux, m := newTestAPI(t, false)

	m.manager.EXPECT().ForUser(gomock.Any(), userID).Return(m.directory)
	m.directory.EXPECT().Snapshot().Return(Snapshot{
		State:          StateReady,
		Clients:        []*types.ClientWithRole{client("c-1", "Acme", types.RoleOwner)},
		ActiveClientID: "c-1",
	})

	w := do(mux, http.MethodGet, "/api/v0/clients", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		Data struct {
			State          string                  `json:"state"`
			Clients        []*types.ClientWithRole `json:"clients"`
			ActiveClientID string                  `json:"active_client_id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if resp.Data.State != "ready" || resp.Data.ActiveClientID != "c-1" || len(resp.Data.Clients) != 1 || resp.Data.Clients[0].UserRole != types.RoleOwner {
		t.Errorf("unexpected response %+v", resp.Data)
	}
}

func TestAPI_ListClientsRefresh(t *testing.T) {
	tests := []struct {
		name         string
		query        string
		setupMocks   func(*apiMocks)
		expectedCode int
	}{
		{
			name:  "cached list",
			query: "",
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().Snapshot().Return(Snapshot{State: StateReady})
			},
			expectedCode: http.StatusOK,
		},
		{
			name:  "refetched list",
			query: "?refresh=true",
			setupMocks: func(m *apiMocks) {
				gomock.InOrder(
					m.directory.EXPECT().Refresh(gomock.Any()).Return(nil),
					m.directory.EXPECT().Snapshot().Return(Snapshot{State: StateReady}),
				)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:  "refetch failure",
			query: "?refresh=1",
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().Refresh(gomock.Any()).Return(errors.New("connection refused"))
			},
			expectedCode: http.StatusInternalServerError,
		},
		{
			name:  "refetch without user",
			query: "?refresh=true",
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().Refresh(gomock.Any()).Return(ErrNoUser)
			},
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := newTestAPI(t, false)

			m.manager.EXPECT().ForUser(gomock.Any(), userID).Return(m.directory)
			tt.setupMocks(m)

			w := do(mux, http.MethodGet, "/api/v0/clients"+tt.query, "")
			if w.Code != tt.expectedCode {
				t.Fatalf("expected %d, got %d", tt.expectedCode, w.Code)
			}
		})
	}
}

func TestAPI_SwitchClient(t *testing.T) {
	tests := []struct {
		name     string
		switched bool
	}{
		{name: "known client", switched: true},
		{name: "unknown client", switched: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := newTestAPI(t, false)

			m.manager.EXPECT().ForUser(gomock.Any(), userID).Return(m.directory)
			m.directory.EXPECT().SwitchClient(gomock.Any(), "c-2").Return(tt.switched)
			m.directory.EXPECT().Snapshot().Return(Snapshot{State: StateReady})

			w := do(mux, http.MethodPost, "/api/v0/clients/c-2/switch", "")
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}

			var resp struct {
				Data SwitchResponse `json:"data"`
			}
			_ = json.NewDecoder(w.Body).Decode(&resp)

			if resp.Data.Switched != tt.switched {
				t.Errorf("expected switched %v, got %v", tt.switched, resp.Data.Switched)
			}
		})
	}
}

func TestAPI_CreateClient(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMocks     func(*apiMocks)
		expectedStatus int
	}{
		{
			name: "created",
			body: `{"name": "Acme"}`,
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().CreateClient(gomock.Any(), &ClientInput{Name: "Acme"}).Return(&types.Client{ID: "c-1", Name: "Acme"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "validation",
			body: `{}`,
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("%w: name is required", ErrValidation))
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown field",
			body:           `{"name": "Acme", "owner": "mallory"}`,
			setupMocks:     func(*apiMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "backend failure is not leaked",
			body: `{"name": "Acme"}`,
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().CreateClient(gomock.Any(), gomock.Any()).Return(nil, errors.New("pq: relation clients does not exist"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := newTestAPI(t, false)
			m.manager.EXPECT().ForUser(gomock.Any(), userID).Return(m.directory)
			tt.setupMocks(m)

			w := do(mux, http.MethodPost, "/api/v0/clients", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, w.Code)
			}

			if w.Code == http.StatusInternalServerError {
				var resp httptypes.ErrorResponse
				_ = json.NewDecoder(w.Body).Decode(&resp)
				if resp.Message != "internal error" {
					t.Errorf("expected a generic message, got %q", resp.Message)
				}
			}
		})
	}
}

func TestAPI_Invite(t *testing.T) {
	invitation := &types.ClientInvitation{ID: "i-1", ClientID: "c-1", Email: "bob@example.com", Role: types.RoleAuditor}

	tests := []struct {
		name           string
		body           string
		withOnboarding bool
		setupMocks     func(*apiMocks)
		expectedStatus int
		expectedLink   string
	}{
		{
			name: "without onboarding",
			body: `{"email": "bob@example.com", "role": "auditor"}`,
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().InviteUserToClient(gomock.Any(), "c-1", "bob@example.com", types.RoleAuditor).Return(invitation, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "with onboarding",
			body:           `{"email": "bob@example.com", "role": "auditor"}`,
			withOnboarding: true,
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().InviteUserToClient(gomock.Any(), "c-1", "bob@example.com", types.RoleAuditor).Return(invitation, nil)
				m.onboarding.EXPECT().ProvisionInvitee(gomock.Any(), invitation).Return("https://id.example.com/recovery?token=abc", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedLink:   "https://id.example.com/recovery?token=abc",
		},
		{
			name:           "onboarding failure keeps the invitation",
			body:           `{"email": "bob@example.com", "role": "auditor"}`,
			withOnboarding: true,
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().InviteUserToClient(gomock.Any(), "c-1", "bob@example.com", types.RoleAuditor).Return(invitation, nil)
				m.onboarding.EXPECT().ProvisionInvitee(gomock.Any(), invitation).Return("", errors.New("kratos unavailable"))
				m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "owner role rejected by the request schema",
			body:           `{"email": "bob@example.com", "role": "owner"}`,
			setupMocks:     func(*apiMocks) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "pending invitation",
			body: `{"email": "bob@example.com"}`,
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().InviteUserToClient(gomock.Any(), "c-1", "bob@example.com", types.Role("")).Return(nil, ErrInvitationPending)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "forbidden",
			body: `{"email": "bob@example.com"}`,
			setupMocks: func(m *apiMocks) {
				m.directory.EXPECT().InviteUserToClient(gomock.Any(), "c-1", "bob@example.com", types.Role("")).Return(nil, ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := newTestAPI(t, tt.withOnboarding)
			m.manager.EXPECT().ForUser(gomock.Any(), userID).Return(m.directory)
			tt.setupMocks(m)

			w := do(mux, http.MethodPost, "/api/v0/clients/c-1/invitations", tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, w.Code)
			}

			if w.Code != http.StatusCreated {
				return
			}

			var resp struct {
				Data InviteResponse `json:"data"`
			}
			_ = json.NewDecoder(w.Body).Decode(&resp)

			if resp.Data.RecoveryLink != tt.expectedLink {
				t.Errorf("expected link %q, got %q", tt.expectedLink, resp.Data.RecoveryLink)
			}
		})
	}
}

func TestAPI_AcceptInvitation(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "accepted", expectedStatus: http.StatusOK},
		{name: "unknown", err: ErrInvitationNotFound, expectedStatus: http.StatusNotFound},
		{name: "expired", err: ErrInvitationExpired, expectedStatus: http.StatusGone},
		{name: "already accepted", err: ErrInvitationAccepted, expectedStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux, m := newTestAPI(t, false)
			m.manager.EXPECT().ForUser(gomock.Any(), userID).Return(m.directory)

			if tt.err != nil {
				m.directory.EXPECT().AcceptInvitation(gomock.Any(), "tok-1").Return(nil, tt.err)
			} else {
				m.directory.EXPECT().AcceptInvitation(gomock.Any(), "tok-1").Return(&types.ClientUser{ClientID: "c-1", UserID: userID, Role: types.RoleViewer}, nil)
			}

			w := do(mux, http.MethodPost, "/api/v0/invitations/tok-1/accept", "")
			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestAPI_MembersAndInvitations(t *testing.T) {
	mux, m := newTestAPI(t, false)
	m.manager.EXPECT().ForUser(gomock.Any(), userID).Return(m.directory).Times(4)

	m.directory.EXPECT().ListMembers(gomock.Any(), "c-1").Return([]*MemberView{
		{Member: types.Member{ClientUser: types.ClientUser{UserID: "u-2", Role: types.RoleViewer}}, CanChangeRole: true},
	}, nil)
	m.directory.EXPECT().UpdateMemberRole(gomock.Any(), "c-1", "u-2", types.RoleManager).Return(nil)
	m.directory.EXPECT().ListPendingInvitations(gomock.Any(), "c-1").Return([]*types.ClientInvitation{}, nil)
	m.directory.EXPECT().RevokeInvitation(gomock.Any(), "c-1", "i-1").Return(nil)

	if w := do(mux, http.MethodGet, "/api/v0/clients/c-1/members", ""); w.Code != http.StatusOK {
		t.Errorf("list members: expected 200, got %d", w.Code)
	}

	if w := do(mux, http.MethodPatch, "/api/v0/clients/c-1/members/u-2", `{"role": "manager"}`); w.Code != http.StatusOK {
		t.Errorf("update role: expected 200, got %d", w.Code)
	}

	if w := do(mux, http.MethodGet, "/api/v0/clients/c-1/invitations", ""); w.Code != http.StatusOK {
		t.Errorf("list invitations: expected 200, got %d", w.Code)
	}

	if w := do(mux, http.MethodDelete, "/api/v0/clients/c-1/invitations/i-1", ""); w.Code != http.StatusNoContent {
		t.Errorf("revoke invitation: expected 204, got %d", w.Code)
	}
}

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{ErrNoUser, http.StatusUnauthorized},
		{fmt.Errorf("%w: bad", ErrValidation), http.StatusBadRequest},
		{ErrForbidden, http.StatusForbidden},
		{ErrClientNotFound, http.StatusNotFound},
		{ErrMemberNotFound, http.StatusNotFound},
		{ErrInvitationNotFound, http.StatusNotFound},
		{ErrInvitationPending, http.StatusConflict},
		{ErrInvitationAccepted, http.StatusConflict},
		{ErrInvitationExpired, http.StatusGone},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := errorStatus(tt.err); got != tt.expected {
			t.Errorf("%v: expected %d, got %d", tt.err, tt.expected, got)
		}
	}
}
