// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tracing

import (
	"net/http/httptest"
	"testing"
)

func TestTracedFilter(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/api/v0/clients", true},
		{"/api/v0/metrics", false},
		{"/api/v0/status", false},
		{"/webhooks/token", true},
	}

	for _, test := range tests {
		t.Run(test.path, func(t *testing.T) {
			r := httptest.NewRequest("GET", test.path, nil)
			if got := traced(r); got != test.expected {
				t.Errorf("expected %v for %s, got %v", test.expected, test.path, got)
			}
		})
	}
}
