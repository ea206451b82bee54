// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/types"
)

func (m *mocks) registry() *Registry {
	return NewRegistry(m.provider, m.profiles, m.tracer, m.monitor, m.logger)
}

func TestRegistry_SignInThenVerify(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	m.provider.EXPECT().SignIn(gomock.Any(), alice.Email, "secret123").
		Return(&types.Session{Token: "token-1", User: alice, ExpiresAt: time.Now().Add(time.Hour)}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), alice.ID).Return(&types.Profile{ID: alice.ID}, nil)

	r := m.registry()

	var started []string
	r.Subscribe(func(_ context.Context, _, next *types.User) {
		if next != nil {
			started = append(started, next.ID)
		}
	})

	if _, err := r.SignIn(context.Background(), alice.Email, "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := r.VerifyToken(context.Background(), "token-1")
	if err != nil || userID != alice.ID {
		t.Fatalf("expected %s, got %q (%v)", alice.ID, userID, err)
	}

	if len(started) != 1 || started[0] != alice.ID {
		t.Errorf("expected listener to see the sign in, got %v", started)
	}
}

func TestRegistry_GetRestoresUnknownToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	m.provider.EXPECT().GetSession(gomock.Any(), "token-1").Return(&types.Session{User: alice}, nil).Times(1)
	m.profiles.EXPECT().GetProfile(gomock.Any(), alice.ID).Return(&types.Profile{ID: alice.ID}, nil)
	m.provider.EXPECT().GetSession(gomock.Any(), "unknown").Return(nil, identity.ErrSessionNotFound)

	r := m.registry()

	first, err := r.Get(context.Background(), "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := r.Get(context.Background(), "token-1")
	if err != nil || second != first {
		t.Fatalf("expected the cached store, got %p (%v)", second, err)
	}

	if _, err := r.VerifyToken(context.Background(), "unknown"); !errors.Is(err, identity.ErrSessionNotFound) {
		t.Fatalf("expected session not found, got %v", err)
	}

	if _, err := r.Get(context.Background(), ""); !errors.Is(err, identity.ErrSessionNotFound) {
		t.Fatalf("expected session not found for an empty token, got %v", err)
	}
}

func TestRegistry_ExpiredSessionIsEvicted(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	expiresAt := time.Now().Add(time.Minute)
	m.provider.EXPECT().SignIn(gomock.Any(), alice.Email, "secret123").
		Return(&types.Session{Token: "token-1", User: alice, ExpiresAt: expiresAt}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), alice.ID).Return(&types.Profile{ID: alice.ID}, nil)

	r := m.registry()

	var ended []string
	r.Subscribe(func(_ context.Context, prev, next *types.User) {
		if next == nil && prev != nil {
			ended = append(ended, prev.ID)
		}
	})

	if _, err := r.SignIn(context.Background(), alice.Email, "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r.now = func() time.Time { return expiresAt.Add(time.Second) }

	if _, err := r.Get(context.Background(), "token-1"); !errors.Is(err, identity.ErrSessionNotFound) {
		t.Fatalf("expected expired session to be rejected, got %v", err)
	}

	if len(ended) != 1 {
		t.Errorf("expected listeners to observe the expiry, got %v", ended)
	}
}

func TestRegistry_SignOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := newMocks(ctrl)

	m.provider.EXPECT().SignIn(gomock.Any(), alice.Email, "secret123").
		Return(&types.Session{Token: "token-1", User: alice}, nil)
	m.profiles.EXPECT().GetProfile(gomock.Any(), alice.ID).Return(&types.Profile{ID: alice.ID}, nil)
	m.provider.EXPECT().SignOut(gomock.Any(), "token-1").Return(nil)
	m.provider.EXPECT().GetSession(gomock.Any(), "token-1").Return(nil, identity.ErrSessionNotFound)

	r := m.registry()

	if _, err := r.SignIn(context.Background(), alice.Email, "secret123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := r.SignOut(context.Background(), "token-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := r.VerifyToken(context.Background(), "token-1"); !errors.Is(err, identity.ErrSessionNotFound) {
		t.Fatalf("expected signed out token to be rejected, got %v", err)
	}
}
