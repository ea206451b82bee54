// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package onboarding

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/kratos"
	"github.com/canonical/compliance-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package onboarding -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestService_ProvisionInvitee(t *testing.T) {
	invitation := &types.ClientInvitation{ID: "inv-1", Email: "bob@example.com", ExpiresAt: time.Now().Add(24 * time.Hour)}

	tests := []struct {
		name         string
		invitation   *types.ClientInvitation
		setupMocks   func(*MockKratosClientInterface, *MockLoggerInterface)
		expectedLink string
		expectedErr  bool
	}{
		{
			name:       "new identity gets a recovery link",
			invitation: invitation,
			setupMocks: func(mockKratos *MockKratosClientInterface, mockLogger *MockLoggerInterface) {
				mockKratos.EXPECT().FindIdentityID(gomock.Any(), "bob@example.com").Return("", nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
				mockKratos.EXPECT().CreateIdentity(gomock.Any(), "bob@example.com", "").Return("identity-1", nil)
				mockKratos.EXPECT().RecoveryLink(gomock.Any(), "identity-1", gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, lifetime time.Duration) (string, error) {
						if lifetime > 24*time.Hour || lifetime < 23*time.Hour {
							t.Errorf("expected the link to expire with the invitation, got %s", lifetime)
						}
						return "https://id.example.com/self-service/recovery?flow=1&token=abc", nil
					},
				)
			},
			expectedLink: "https://id.example.com/self-service/recovery?flow=1&token=abc",
		},
		{
			name:       "existing identity",
			invitation: invitation,
			setupMocks: func(mockKratos *MockKratosClientInterface, mockLogger *MockLoggerInterface) {
				mockKratos.EXPECT().FindIdentityID(gomock.Any(), "bob@example.com").Return("identity-1", nil)
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
		},
		{
			name:       "lookup failure",
			invitation: invitation,
			setupMocks: func(mockKratos *MockKratosClientInterface, mockLogger *MockLoggerInterface) {
				mockKratos.EXPECT().FindIdentityID(gomock.Any(), "bob@example.com").Return("", errors.New("unavailable"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedErr: true,
		},
		{
			name:       "identity creation failure",
			invitation: invitation,
			setupMocks: func(mockKratos *MockKratosClientInterface, mockLogger *MockLoggerInterface) {
				mockKratos.EXPECT().FindIdentityID(gomock.Any(), "bob@example.com").Return("", nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
				mockKratos.EXPECT().CreateIdentity(gomock.Any(), "bob@example.com", "").Return("", errors.New("conflict"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedErr: true,
		},
		{
			name:       "identity registered concurrently",
			invitation: invitation,
			setupMocks: func(mockKratos *MockKratosClientInterface, mockLogger *MockLoggerInterface) {
				mockKratos.EXPECT().FindIdentityID(gomock.Any(), "bob@example.com").Return("", nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
				mockKratos.EXPECT().CreateIdentity(gomock.Any(), "bob@example.com", "").Return("", kratos.ErrIdentityExists)
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any())
			},
		},
		{
			name:       "recovery link failure",
			invitation: invitation,
			setupMocks: func(mockKratos *MockKratosClientInterface, mockLogger *MockLoggerInterface) {
				mockKratos.EXPECT().FindIdentityID(gomock.Any(), "bob@example.com").Return("", nil)
				mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any())
				mockKratos.EXPECT().CreateIdentity(gomock.Any(), "bob@example.com", "").Return("identity-1", nil)
				mockKratos.EXPECT().RecoveryLink(gomock.Any(), "identity-1", gomock.Any()).Return("", errors.New("unavailable"))
				mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectedErr: true,
		},
		{
			name:        "missing email",
			invitation:  &types.ClientInvitation{ID: "inv-2"},
			setupMocks:  func(*MockKratosClientInterface, *MockLoggerInterface) {},
			expectedErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			mockKratos := NewMockKratosClientInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "onboarding.Service.ProvisionInvitee").
				Return(context.Background(), trace.SpanFromContext(context.Background()))
			tt.setupMocks(mockKratos, mockLogger)

			s := NewService(mockKratos, 7*24*time.Hour, mockTracer, NewMockMonitorInterface(ctrl), mockLogger)

			link, err := s.ProvisionInvitee(context.Background(), tt.invitation)
			if tt.expectedErr != (err != nil) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}

			if link != tt.expectedLink {
				t.Errorf("expected link %q, got %q", tt.expectedLink, link)
			}
		})
	}
}
