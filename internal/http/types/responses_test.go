// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type payload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()

	WriteError(w, http.StatusNotFound, "client not found")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}

	var body ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}

	if body.Status != http.StatusNotFound || body.Message != "client not found" {
		t.Errorf("unexpected body %+v", body)
	}
}

func TestDecodeJSON(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name        string
		body        string
		expectedErr string
	}{
		{name: "valid", body: `{"name": "Acme"}`},
		{name: "malformed", body: `{"name": `, expectedErr: "invalid request body"},
		{name: "unknown field", body: `{"name": "Acme", "owner": "x"}`, expectedErr: "invalid request body"},
		{name: "missing required", body: `{}`, expectedErr: "Name is required"},
		{name: "bad email", body: `{"name": "Acme", "email": "nope"}`, expectedErr: "Email must be a valid email address"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(test.body))

			var p payload
			err := DecodeJSON(r, &p, validate)

			if test.expectedErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			if err == nil || !strings.Contains(err.Error(), test.expectedErr) {
				t.Fatalf("expected error containing %q, got %v", test.expectedErr, err)
			}
		})
	}
}
