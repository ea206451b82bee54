// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/pkg/authentication"
)

func TestRouter_Authentication(t *testing.T) {
	logger := logging.NewNoopLogger()

	router := NewRouter(
		&RouterConfig{
			CORSAllowedOrigins: []string{"https://app.example.com"},
			Verifier:           authentication.NewChainVerifier(),
		},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("compliance-service", logger),
		logger,
	)

	tests := []struct {
		method   string
		path     string
		header   string
		expected int
	}{
		{http.MethodGet, "/api/v0/version", "", http.StatusOK},
		{http.MethodGet, "/api/v0/status", "", http.StatusOK},
		{http.MethodGet, "/api/v0/clients", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v0/clients", "Bearer forged", http.StatusUnauthorized},
		{http.MethodPost, "/api/v0/clients/c-1/switch", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v0/billing/subscription", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v0/auth/me", "", http.StatusUnauthorized},
		{http.MethodGet, "/api/v0/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expected {
				t.Errorf("expected %d, got %d", tt.expected, w.Code)
			}
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	logger := logging.NewNoopLogger()

	router := NewRouter(
		&RouterConfig{CORSAllowedOrigins: []string{"https://app.example.com"}, Verifier: authentication.NewChainVerifier()},
		tracing.NewNoopTracer(),
		monitoring.NewNoopMonitor("compliance-service", logger),
		logger,
	)

	req := httptest.NewRequest(http.MethodOptions, "/api/v0/clients", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("expected the origin to be allowed, got %q", got)
	}
}
