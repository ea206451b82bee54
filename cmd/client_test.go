// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestAPIClientDo(t *testing.T) {
	tests := []struct {
		name             string
		method           string
		responses        []int
		body             string
		expectedErr      string
		expectedAttempts int32
	}{
		{
			name:             "read recovers from an unavailable server",
			method:           http.MethodGet,
			responses:        []int{http.StatusServiceUnavailable, http.StatusOK},
			body:             `{"data": {"name": "Acme"}}`,
			expectedAttempts: 2,
		},
		{
			name:             "write is not repeated after a server error",
			method:           http.MethodPost,
			responses:        []int{http.StatusInternalServerError},
			body:             `{"message": "internal error", "status": 500}`,
			expectedErr:      "api error (status 500): internal error",
			expectedAttempts: 1,
		},
		{
			name:             "client errors are returned as is",
			method:           http.MethodGet,
			responses:        []int{http.StatusForbidden},
			body:             `{"message": "forbidden", "status": 403}`,
			expectedErr:      "api error (status 403): forbidden",
			expectedAttempts: 1,
		},
		{
			name:             "exhausted retries keep the last answer",
			method:           http.MethodGet,
			responses:        []int{http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway, http.StatusBadGateway},
			body:             `{"message": "upstream down", "status": 502}`,
			expectedErr:      "api error (status 502): upstream down",
			expectedAttempts: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var attempts atomic.Int32

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := attempts.Add(1)

				if r.Header.Get("Authorization") != "Bearer token-1" {
					t.Errorf("unexpected authorization %q", r.Header.Get("Authorization"))
				}

				status := tt.responses[min(int(n), len(tt.responses))-1]
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := newAPIClient(strings.TrimPrefix(server.URL, "http://")+"/", "token-1")
			c.client.RetryWaitMin = time.Millisecond
			c.client.RetryWaitMax = time.Millisecond

			out := new(struct {
				Name string `json:"name"`
			})

			err := c.do(context.Background(), tt.method, "/api/v0/clients", nil, out)

			switch {
			case tt.expectedErr == "" && err != nil:
				t.Fatalf("unexpected error: %v", err)
			case tt.expectedErr != "" && (err == nil || err.Error() != tt.expectedErr):
				t.Fatalf("expected %q, got %v", tt.expectedErr, err)
			}

			if tt.expectedErr == "" && out.Name != "Acme" {
				t.Errorf("expected the data envelope to be decoded, got %+v", out)
			}

			if got := attempts.Load(); got != tt.expectedAttempts {
				t.Errorf("expected %d attempts, got %d", tt.expectedAttempts, got)
			}
		})
	}
}
