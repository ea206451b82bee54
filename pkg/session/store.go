// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/storage"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

// Listener receives user transitions, prev or next is nil when signed out.
type Listener func(ctx context.Context, prev, next *types.User)

// Store holds one authenticated session and the profile of its user.
type Store struct {
	mu sync.RWMutex

	loading   bool
	user      *types.User
	profile   *types.Profile
	token     string
	expiresAt time.Time

	listeners map[int]Listener
	nextID    int

	provider ProviderInterface
	profiles ProfileStorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loading
}

// User returns a copy of the current user, nil when signed out.
func (s *Store) User() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return nil
	}

	u := *s.user

	return &u
}

func (s *Store) Profile() *types.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.profile == nil {
		return nil
	}

	p := *s.profile

	return &p
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *Store) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.expiresAt
}

// Subscribe registers l and replays the current user to it when one is signed in.
// The returned function removes the listener.
func (s *Store) Subscribe(ctx context.Context, l Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l

	var current *types.User
	if s.user != nil {
		u := *s.user
		current = &u
	}
	s.mu.Unlock()

	if current != nil {
		l(ctx, nil, current)
	}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.listeners, id)
	}
}

// SignUp registers a new identity and mirrors it into a profile.
// The returned session is nil when the provider asks for email confirmation, the store then stays signed out.
func (s *Store) SignUp(ctx context.Context, email, password, fullName string) (*types.User, *types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Store.SignUp")
	defer span.End()

	s.setLoading(true)
	defer s.setLoading(false)

	user, session, err := s.provider.SignUp(ctx, email, password, fullName)
	if err != nil {
		err = identity.ClassifySignUpError(err)
		s.logger.Security().AuthnFailure(email, logging.WithContext("reason", err.Error()))
		return nil, nil, err
	}

	profile, err := s.profiles.UpsertProfile(ctx, newProfile(user))
	if err != nil {
		s.logger.Errorf("failed to create profile for user %s: %v", user.ID, err)
		profile = nil
	}

	if session == nil {
		s.logger.Infof("user %s registered, waiting for email confirmation", user.ID)
		return user, nil, nil
	}

	s.set(ctx, session, profile)
	s.logger.Security().AuthnSuccess(user.ID, logging.WithContext("method", "signup"))

	return user, session, nil
}

func (s *Store) SignIn(ctx context.Context, email, password string) (*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Store.SignIn")
	defer span.End()

	s.setLoading(true)
	defer s.setLoading(false)

	session, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		s.logger.Security().AuthnFailure(email, logging.WithContext("reason", err.Error()))
		if errors.Is(err, identity.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	s.set(ctx, session, s.loadProfile(ctx, &session.User))
	s.logger.Security().AuthnSuccess(session.User.ID, logging.WithContext("method", "password"))

	return session, nil
}

// Restore resolves a token issued earlier into a live session.
func (s *Store) Restore(ctx context.Context, token string) (*types.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.Store.Restore")
	defer span.End()

	s.setLoading(true)
	defer s.setLoading(false)

	session, err := s.provider.GetSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Token == "" {
		session.Token = token
	}

	s.set(ctx, session, s.loadProfile(ctx, &session.User))

	return session, nil
}

// SignOut terminates the session at the provider and always clears local state.
func (s *Store) SignOut(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "session.Store.SignOut")
	defer span.End()

	token := s.Token()
	if token == "" {
		return nil
	}

	err := s.provider.SignOut(ctx, token)
	if err != nil && !errors.Is(err, identity.ErrSessionNotFound) {
		s.logger.Errorf("failed to terminate session at provider: %v", err)
	} else {
		err = nil
	}

	s.clear(ctx)

	return err
}

// Expire clears local state without contacting the provider.
func (s *Store) Expire(ctx context.Context) {
	s.clear(ctx)
}

func (s *Store) loadProfile(ctx context.Context, user *types.User) *types.Profile {
	profile, err := s.profiles.GetProfile(ctx, user.ID)
	if err == nil {
		return profile
	}

	if !errors.Is(err, storage.ErrNotFound) {
		s.logger.Errorf("failed to load profile for user %s: %v", user.ID, err)
		return nil
	}

	profile, err = s.profiles.UpsertProfile(ctx, newProfile(user))
	if err != nil {
		s.logger.Errorf("failed to create profile for user %s: %v", user.ID, err)
		return nil
	}

	return profile
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = v
}

func (s *Store) set(ctx context.Context, session *types.Session, profile *types.Profile) {
	next := session.User

	s.mu.Lock()
	prev := s.user
	s.user = &next
	s.profile = profile
	s.token = session.Token
	s.expiresAt = session.ExpiresAt
	s.mu.Unlock()

	if prev == nil || prev.ID != next.ID {
		s.notify(ctx, prev, &next)
	}
}

func (s *Store) clear(ctx context.Context) {
	s.mu.Lock()
	prev := s.user
	s.user = nil
	s.profile = nil
	s.token = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()

	if prev != nil {
		s.notify(ctx, prev, nil)
	}
}

func (s *Store) notify(ctx context.Context, prev, next *types.User) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l(ctx, prev, next)
	}
}

func newProfile(user *types.User) *types.Profile {
	p := &types.Profile{
		ID:                 user.ID,
		Email:              user.Email,
		Role:               types.RoleViewer,
		SubscriptionStatus: types.SubscriptionTrial,
	}

	if user.FullName != "" {
		name := user.FullName
		p.FullName = &name
	}

	return p
}

func NewStore(provider ProviderInterface, profiles ProfileStorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Store {
	s := new(Store)

	s.listeners = make(map[int]Listener)

	s.provider = provider
	s.profiles = profiles

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
