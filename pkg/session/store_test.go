// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package session -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

type mocks struct {
	provider *MockProviderInterface
	profiles *MockProfileStorageInterface
	tracer   *MockTracingInterface
	monitor  *MockMonitorInterface
	logger   *MockLoggerInterface
}

func newMocks(ctrl *gomock.Controller) *mocks {
	m := &mocks{
		provider: NewMockProviderInterface(ctrl),
		profiles: NewMockProfileStorageInterface(ctrl),
		tracer:   NewMockTracingInterface(ctrl),
		monitor:  NewMockMonitorInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
	}

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).Return(context.Background(), trace.SpanFromContext(context.Background())).AnyTimes()
	m.logger.EXPECT().Security().Return(logging.NewNoopLogger().Security()).AnyTimes()

	return m
}

func (m *mocks) store() *Store {
	return NewStore(m.provider, m.profiles, m.tracer, m.monitor, m.logger)
}

type transition struct {
	prev, next string
}

func record(s *Store) *[]transition {
	events := new([]transition)

	s.Subscribe(context.Background(), func(_ context.Context, prev, next *types.User) {
		t := transition{}
		if prev != nil {
			t.prev = prev.ID
		}
		if next != nil {
			t.next = next.ID
		}
		*events = append(*events, t)
	})

	return events
}

var alice = types.User{ID: "user-1", Email: "alice@example.com", FullName: "Alice"}

func TestStore_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		setupMocks     func(*mocks)
		expectedErr    error
		expectSignedIn bool
		expectedEvents []transition
	}{
		{
			name: "session issued",
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), alice.Email, "secret123", "Alice").
					Return(&alice, &types.Session{Token: "token-1", User: alice}, nil)
				m.profiles.EXPECT().UpsertProfile(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, p *types.Profile) (*types.Profile, error) {
						if p.ID != alice.ID || p.Role != types.RoleViewer || p.SubscriptionStatus != types.SubscriptionTrial {
							t.Errorf("unexpected profile %+v", p)
						}
						if p.FullName == nil || *p.FullName != "Alice" {
							t.Errorf("expected full name on profile, got %v", p.FullName)
						}
						return p, nil
					},
				)
			},
			expectSignedIn: true,
			expectedEvents: []transition{{next: alice.ID}},
		},
		{
			name: "email confirmation required",
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), alice.Email, "secret123", "Alice").Return(&alice, nil, nil)
				m.profiles.EXPECT().UpsertProfile(gomock.Any(), gomock.Any()).Return(&types.Profile{ID: alice.ID}, nil)
				m.logger.EXPECT().Infof(gomock.Any(), gomock.Any())
			},
		},
		{
			name: "profile mirror failure does not fail sign up",
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), alice.Email, "secret123", "Alice").
					Return(&alice, &types.Session{Token: "token-1", User: alice}, nil)
				m.profiles.EXPECT().UpsertProfile(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			},
			expectSignedIn: true,
			expectedEvents: []transition{{next: alice.ID}},
		},
		{
			name: "existing account is classified",
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), alice.Email, "secret123", "Alice").
					Return(nil, nil, errors.New("User already registered"))
			},
			expectedErr: identity.ErrAccountExists,
		},
		{
			name: "unknown failure is generic",
			setupMocks: func(m *mocks) {
				m.provider.EXPECT().SignUp(gomock.Any(), alice.Email, "secret123", "Alice").
					Return(nil, nil, errors.New("upstream timeout"))
			},
			expectedErr: identity.ErrSignUpFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			tt.setupMocks(m)

			s := m.store()
			events := record(s)

			_, _, err := s.SignUp(context.Background(), alice.Email, "secret123", "Alice")

			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("expected error %v, got %v", tt.expectedErr, err)
			}

			if signedIn := s.User() != nil; signedIn != tt.expectSignedIn {
				t.Errorf("expected signed in %v, got %v", tt.expectSignedIn, signedIn)
			}

			if s.Loading() {
				t.Error("expected loading to be reset")
			}

			if len(*events) != len(tt.expectedEvents) {
				t.Fatalf("expected events %v, got %v", tt.expectedEvents, *events)
			}
			for i := range tt.expectedEvents {
				if (*events)[i] != tt.expectedEvents[i] {
					t.Errorf("expected event %v, got %v", tt.expectedEvents[i], (*events)[i])
				}
			}
		})
	}
}

func TestStore_SignIn(t *testing.T) {
	t.Run("invalid credentials", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)
		m.provider.EXPECT().SignIn(gomock.Any(), alice.Email, "wrong").Return(nil, identity.ErrInvalidCredentials)

		s := m.store()

		if _, err := s.SignIn(context.Background(), alice.Email, "wrong"); !errors.Is(err, identity.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}

		if s.User() != nil {
			t.Error("expected store to stay signed out")
		}
	})

	t.Run("missing profile is created", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := newMocks(ctrl)
		m.provider.EXPECT().SignIn(gomock.Any(), alice.Email, "secret123").
			Return(&types.Session{Token: "token-1", User: alice, ExpiresAt: time.Now().Add(time.Hour)}, nil)
		m.profiles.EXPECT().GetProfile(gomock.Any(), alice.ID).Return(nil, storage.ErrNotFound)
		m.profiles.EXPECT().UpsertProfile(gomock.Any(), gomock.Any()).Return(&types.Profile{ID: alice.ID, Role: types.RoleViewer}, nil)

		s := m.store()

		if _, err := s.SignIn(context.Background(), alice.Email, "secret123"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if s.Token() != "token-1" || s.Profile() == nil || s.Profile().ID != alice.ID {
			t.Errorf("unexpected state token=%q profile=%+v", s.Token(), s.Profile())
		}
	})
}

func TestStore_SignOut(t *testing.T) {
	tests := []struct {
		name        string
		providerErr error
		expectErr   bool
	}{
		{name: "success"},
		{name: "already gone at the provider", providerErr: identity.ErrSessionNotFound},
		{name: "provider failure still clears", providerErr: errors.New("network"), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := newMocks(ctrl)
			m.provider.EXPECT().GetSession(gomock.Any(), "token-1").Return(&types.Session{User: alice}, nil)
			m.profiles.EXPECT().GetProfile(gomock.Any(), alice.ID).Return(&types.Profile{ID: alice.ID}, nil)
			m.provider.EXPECT().SignOut(gomock.Any(), "token-1").Return(tt.providerErr)
			if tt.expectErr {
				m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any())
			}

			s := m.store()
			if _, err := s.Restore(context.Background(), "token-1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			events := record(s)

			err := s.SignOut(context.Background())
			if (err != nil) != tt.expectErr {
				t.Fatalf("expected error %v, got %v", tt.expectErr, err)
			}

			if s.User() != nil || s.Token() != "" || s.Profile() != nil {
				t.Error("expected local state to be cleared")
			}

			expected := []transition{{next: alice.ID}, {prev: alice.ID}}
			if len(*events) != 2 || (*events)[0] != expected[0] || (*events)[1] != expected[1] {
				t.Errorf("expected events %v, got %v", expected, *events)
			}
		})
	}
}

func TestStore_SubscribeUnsubscribe(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)
	m.provider.EXPECT().GetSession(gomock.Any(), "token-1").Return(&types.Session{User: alice}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), alice.ID).Return(&types.Profile{ID: alice.ID}, nil)

	s := m.store()

	calls := 0
	unsubscribe := s.Subscribe(context.Background(), func(context.Context, *types.User, *types.User) { calls++ })

	if _, err := s.Restore(context.Background(), "token-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected one notification, got %d", calls)
	}

	unsubscribe()
	s.Expire(context.Background())

	if calls != 1 {
		t.Errorf("expected no notification after unsubscribe, got %d", calls)
	}
}
