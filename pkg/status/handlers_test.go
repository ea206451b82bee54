// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/version"
)

//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package status -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestAPI_Status(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(db, cache *MockPingerInterface, monitor *MockMonitorInterface, logger *MockLoggerInterface)
		expectedStatus int
		expectedChecks map[string]string
	}{
		{
			name: "all dependencies available",
			setupMocks: func(db, cache *MockPingerInterface, monitor *MockMonitorInterface, _ *MockLoggerInterface) {
				db.EXPECT().Ping(gomock.Any()).Return(nil)
				cache.EXPECT().Ping(gomock.Any()).Return(nil)
				monitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "database"}, 1.0).Return(nil)
				monitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "redis"}, 1.0).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedChecks: map[string]string{"database": "ok", "redis": "ok"},
		},
		{
			name: "redis down",
			setupMocks: func(db, cache *MockPingerInterface, monitor *MockMonitorInterface, logger *MockLoggerInterface) {
				db.EXPECT().Ping(gomock.Any()).Return(nil)
				cache.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))
				monitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "database"}, 1.0).Return(nil)
				monitor.EXPECT().SetDependencyAvailability(map[string]string{"component": "redis"}, 0.0).Return(nil)
				logger.EXPECT().Warnf(gomock.Any(), gomock.Any())
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedChecks: map[string]string{"database": "ok", "redis": "unavailable"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			db := NewMockPingerInterface(ctrl)
			cache := NewMockPingerInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "status.API.status").Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(db, cache, mockMonitor, mockLogger)

			mux := chi.NewMux()
			NewAPI(map[string]PingerInterface{"database": db, "redis": cache}, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/status", nil))

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d", tt.expectedStatus, w.Code)
			}

			var s Status
			if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
				t.Fatalf("failed to decode status: %v", err)
			}

			for name, expected := range tt.expectedChecks {
				if s.Checks[name] != expected {
					t.Errorf("check %s: expected %s, got %s", name, expected, s.Checks[name])
				}
			}
		})
	}
}

func TestAPI_Version(t *testing.T) {
	ctrl := gomock.NewController(t)

	mux := chi.NewMux()
	NewAPI(nil, NewMockTracingInterface(ctrl), NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl)).RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v0/version", nil))

	var info BuildInfo
	if err := json.NewDecoder(w.Body).Decode(&info); err != nil {
		t.Fatalf("failed to decode version: %v", err)
	}

	if info.Version != version.Version {
		t.Errorf("expected %s, got %s", version.Version, info.Version)
	}
}
