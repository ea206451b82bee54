// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/ory/hydra/v2/oauth2"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/types"
)

const (
	hookKey          = "hook-secret"
	registrationBody = `{"id": "identity-123", "traits": {"email": "user@example.com", "name": "Jane"}, "schema_id": "default"}`
)

func tokenHookPayload(t *testing.T, subject string) string {
	t.Helper()

	body, err := json.Marshal(&oauth2.TokenHookRequest{Session: oauth2.NewSession(subject)})
	if err != nil {
		t.Fatalf("failed to marshal token hook request: %v", err)
	}

	return string(body)
}

func hookRequest(t *testing.T, api *API, path, key, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if key != "" {
		req.Header.Set("Authorization", key)
	}

	w := httptest.NewRecorder()

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)
	mux.ServeHTTP(w, req)

	return w.Result()
}

func TestAPI_TokenHook(t *testing.T) {
	tokenHookBody := tokenHookPayload(t, "user-123")

	tests := []struct {
		name           string
		key            string
		body           string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
		validateResp   func(*testing.T, *http.Response)
	}{
		{
			name: "memberships are added to the tokens",
			key:  hookKey,
			body: tokenHookBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				claims := []ClientClaim{{ID: "client-1", Role: "owner"}}
				response := new(TokenHookResponse)
				response.Session.IDToken = map[string]interface{}{clientsClaim: claims}
				response.Session.AccessToken = map[string]interface{}{clientsClaim: claims}
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(response, nil)
			},
			expectedStatus: http.StatusOK,
			validateResp: func(t *testing.T, resp *http.Response) {
				var result struct {
					Session struct {
						AccessToken map[string][]ClientClaim `json:"access_token"`
					} `json:"session"`
				}
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if c := result.Session.AccessToken[clientsClaim]; len(c) != 1 || c[0].ID != "client-1" {
					t.Errorf("unexpected access token claims %+v", result.Session.AccessToken)
				}
			},
		},
		{
			name: "no memberships leaves the tokens unchanged",
			key:  hookKey,
			body: tokenHookBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "malformed payload",
			key:  hookKey,
			body: "not-json",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			key:  hookKey,
			body: tokenHookBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockSvc.EXPECT().HandleTokenHook(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name: "wrong api key",
			key:  "guess",
			body: tokenHookBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			res := hookRequest(t, NewAPI(mockService, hookKey, mockLogger), "/webhooks/token", tt.key, tt.body)
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Fatalf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}

			if tt.validateResp != nil {
				tt.validateResp(t, res)
			}
		})
	}
}

func TestAPI_Registration(t *testing.T) {
	tests := []struct {
		name           string
		apiKey         string
		key            string
		body           string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name:   "profile is mirrored",
			apiKey: hookKey,
			key:    hookKey,
			body:   registrationBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), &KratosIdentity{ID: "identity-123", Traits: KratosTraits{Email: "user@example.com", Name: "Jane"}}).
					Return(&types.Profile{ID: "identity-123"}, nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "no api key configured",
			body: registrationBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), gomock.Any()).Return(&types.Profile{ID: "identity-123"}, nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:   "missing api key",
			apiKey: hookKey,
			body:   registrationBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Security().Return(logging.NewNoopLogger().Security())
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid email trait",
			apiKey:         hookKey,
			key:            hookKey,
			body:           `{"id": "identity-123", "traits": {"email": "not-an-email"}}`,
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "malformed payload",
			apiKey: hookKey,
			key:    hookKey,
			body:   "not-json",
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "storage failure",
			apiKey: hookKey,
			key:    hookKey,
			body:   registrationBody,
			setupMocks: func(mockSvc *MockServiceInterface, mockLogger *MockLoggerInterface) {
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			tt.setupMocks(mockService, mockLogger)

			res := hookRequest(t, NewAPI(mockService, tt.apiKey, mockLogger), "/webhooks/registration", tt.key, tt.body)
			defer res.Body.Close()

			if res.StatusCode != tt.expectedStatus {
				body, _ := io.ReadAll(res.Body)
				t.Errorf("expected status %d, got %d. Body: %s", tt.expectedStatus, res.StatusCode, string(body))
			}
		})
	}
}
