// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package billing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

func TestCheckoutClient_CreateCheckoutSession(t *testing.T) {
	tests := []struct {
		name        string
		customerID  string
		status      int
		body        string
		validate    func(*testing.T, *http.Request)
		expectedErr error
	}{
		{
			name:       "profile reference",
			customerID: "user-1",
			status:     http.StatusOK,
			body:       `{"id": "cs_1", "url": "https://checkout.example.com/cs_1"}`,
			validate: func(t *testing.T, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer sk_test" {
					t.Errorf("unexpected authorization %q", r.Header.Get("Authorization"))
				}
				if r.Header.Get("Stripe-Version") == "" {
					t.Error("expected a pinned stripe api version")
				}
				if r.PostForm.Get("line_items[0][price]") != "price_starter_monthly" || r.PostForm.Get("mode") != "subscription" {
					t.Errorf("unexpected form %v", r.PostForm)
				}
				if r.PostForm.Get("client_reference_id") != "user-1" || r.PostForm.Has("customer") {
					t.Errorf("unexpected customer fields %v", r.PostForm)
				}
			},
		},
		{
			name:       "provider customer",
			customerID: "cus_42",
			status:     http.StatusOK,
			body:       `{"id": "cs_2", "url": "https://checkout.example.com/cs_2"}`,
			validate: func(t *testing.T, r *http.Request) {
				if r.PostForm.Get("customer") != "cus_42" {
					t.Errorf("expected customer cus_42, got %v", r.PostForm)
				}
			},
		},
		{
			name:        "provider error",
			customerID:  "user-1",
			status:      http.StatusBadRequest,
			body:        `{"error": {"message": "No such price"}}`,
			expectedErr: ErrPaymentUnavailable,
		},
		{
			name:        "invalid request",
			customerID:  "user-1",
			status:      http.StatusBadRequest,
			body:        `{"error": {"type": "invalid_request_error", "message": "No such price", "param": "line_items[0][price]"}}`,
			expectedErr: ErrPaymentUnavailable,
		},
		{
			name:        "session without url",
			customerID:  "user-1",
			status:      http.StatusOK,
			body:        `{"id": "cs_3"}`,
			expectedErr: ErrPaymentUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/v1/checkout/sessions" {
					t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
				}
				if err := r.ParseForm(); err != nil {
					t.Errorf("failed to parse form: %v", err)
				}
				if tt.validate != nil {
					tt.validate(t, r)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			logger := logging.NewNoopLogger()
			c := NewCheckoutClient(server.URL+"/", "sk_test", "https://app/success", "https://app/cancel", tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)

			session, err := c.CreateCheckoutSession(context.Background(), "price_starter_monthly", tt.customerID)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected %v, got %v", tt.expectedErr, err)
			}

			if err == nil && session.URL == "" {
				t.Error("expected a redirect url")
			}
		})
	}
}
