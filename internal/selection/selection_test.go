// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package selection

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package selection -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package selection -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package selection -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package selection -destination ./mock_tracing.go -source=../tracing/interfaces.go

func TestRedisStore_Load(t *testing.T) {
	userID := "user-1"

	testCases := []struct {
		name        string
		setupMocks  func(*MockRedisClientInterface)
		expected    string
		expectedErr bool
	}{
		{
			name: "stored selection",
			setupMocks: func(c *MockRedisClientInterface) {
				c.EXPECT().Get(gomock.Any(), "selection:user-1").Return(redis.NewStringResult("client-1", nil))
			},
			expected: "client-1",
		},
		{
			name: "nothing stored",
			setupMocks: func(c *MockRedisClientInterface) {
				c.EXPECT().Get(gomock.Any(), "selection:user-1").Return(redis.NewStringResult("", redis.Nil))
			},
			expected: "",
		},
		{
			name: "redis error",
			setupMocks: func(c *MockRedisClientInterface) {
				c.EXPECT().Get(gomock.Any(), "selection:user-1").Return(redis.NewStringResult("", errors.New("connection refused")))
			},
			expectedErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockClient := NewMockRedisClientInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			s := NewRedisStore(mockClient, 0, mockTracer, mockMonitor, mockLogger)

			mockTracer.EXPECT().Start(gomock.Any(), "selection.RedisStore.Load").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tc.setupMocks(mockClient)

			got, err := s.Load(context.Background(), userID)

			if tc.expectedErr && err == nil {
				t.Error("expected error but got none")
			} else if !tc.expectedErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestRedisStore_SaveAndClear(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := NewMockRedisClientInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	ttl := 24 * time.Hour
	s := NewRedisStore(mockClient, ttl, mockTracer, mockMonitor, mockLogger)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		Return(context.Background(), trace.SpanFromContext(context.Background())).Times(3)

	gomock.InOrder(
		mockClient.EXPECT().Set(gomock.Any(), "selection:user-1", "client-2", ttl).Return(redis.NewStatusResult("OK", nil)),
		mockClient.EXPECT().Del(gomock.Any(), "selection:user-1").Return(redis.NewIntResult(1, nil)),
		mockClient.EXPECT().Set(gomock.Any(), "selection:user-1", "client-3", ttl).Return(redis.NewStatusResult("", errors.New("readonly"))),
	)

	if err := s.Save(context.Background(), "user-1", "client-2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Clear(context.Background(), "user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Save(context.Background(), "user-1", "client-3"); err == nil {
		t.Fatal("expected save error")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if v, _ := s.Load(ctx, "alice"); v != "" {
		t.Fatalf("expected empty selection, got %q", v)
	}

	_ = s.Save(ctx, "alice", "acme")
	_ = s.Save(ctx, "bob", "beta")

	if v, _ := s.Load(ctx, "alice"); v != "acme" {
		t.Errorf("expected acme, got %q", v)
	}
	if v, _ := s.Load(ctx, "bob"); v != "beta" {
		t.Errorf("selections must be scoped per user, got %q", v)
	}

	_ = s.Clear(ctx, "alice")
	if v, _ := s.Load(ctx, "alice"); v != "" {
		t.Errorf("expected cleared selection, got %q", v)
	}
}
