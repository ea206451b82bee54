// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/types"
	"github.com/canonical/compliance-service/pkg/authentication"
)

func TestAPI(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		userID         string
		setupMocks     func(*MockServiceInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name:   "list plans",
			method: http.MethodGet,
			path:   "/api/v0/billing/plans",
			setupMocks: func(s *MockServiceInterface, _ *MockLoggerInterface) {
				s.EXPECT().ListPlans(gomock.Any()).Return([]*Plan{{ID: types.PlanStarter}})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "config",
			method: http.MethodGet,
			path:   "/api/v0/billing/config",
			setupMocks: func(s *MockServiceInterface, _ *MockLoggerInterface) {
				s.EXPECT().Config(gomock.Any()).Return(&Config{PublishableKey: "pk"})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "subscription without session",
			method:         http.MethodGet,
			path:           "/api/v0/billing/subscription",
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "subscription",
			method: http.MethodGet,
			path:   "/api/v0/billing/subscription",
			userID: "user-1",
			setupMocks: func(s *MockServiceInterface, _ *MockLoggerInterface) {
				s.EXPECT().GetSubscription(gomock.Any(), "user-1").Return(&SubscriptionView{Status: types.SubscriptionTrial}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "checkout",
			method: http.MethodPost,
			path:   "/api/v0/billing/checkout",
			body:   `{"plan": "professional"}`,
			userID: "user-1",
			setupMocks: func(s *MockServiceInterface, _ *MockLoggerInterface) {
				s.EXPECT().CreateCheckout(gomock.Any(), "user-1", types.PlanProfessional).Return(&CheckoutSession{ID: "cs_1", URL: "https://pay"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "checkout unknown plan",
			method:         http.MethodPost,
			path:           "/api/v0/billing/checkout",
			body:           `{"plan": "platinum"}`,
			userID:         "user-1",
			setupMocks:     func(*MockServiceInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "checkout provider down",
			method: http.MethodPost,
			path:   "/api/v0/billing/checkout",
			body:   `{"plan": "starter"}`,
			userID: "user-1",
			setupMocks: func(s *MockServiceInterface, _ *MockLoggerInterface) {
				s.EXPECT().CreateCheckout(gomock.Any(), "user-1", types.PlanStarter).Return(nil, ErrPaymentUnavailable)
			},
			expectedStatus: http.StatusBadGateway,
		},
		{
			name:   "unexpected failure",
			method: http.MethodGet,
			path:   "/api/v0/billing/subscription",
			userID: "user-1",
			setupMocks: func(s *MockServiceInterface, l *MockLoggerInterface) {
				s.EXPECT().GetSubscription(gomock.Any(), "user-1").Return(nil, errors.New("db down"))
				l.EXPECT().Errorf(gomock.Any(), gomock.Any())
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

			api := NewAPI(mockService, mockLogger)
			mux := chi.NewMux()
			api.RegisterPublicEndpoints(mux)
			api.RegisterEndpoints(mux)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.userID != "" {
				req = req.WithContext(authentication.WithUserID(req.Context(), tt.userID))
			}

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}
