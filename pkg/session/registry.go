// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package session

import (
	"context"
	"sync"
	"time"

	"github.com/canonical/compliance-service/internal/identity"
	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

// Registry keeps the live session stores of the process, indexed by session token.
type Registry struct {
	mu        sync.RWMutex
	stores    map[string]*Store
	listeners []Listener

	provider ProviderInterface
	profiles ProfileStorageInterface
	now      func() time.Time

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Subscribe attaches l to every store created from now on.
func (r *Registry) Subscribe(l Listener) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listeners = append(r.listeners, l)
}

func (r *Registry) SignUp(ctx context.Context, email, password, fullName string) (*Store, *types.User, error) {
	ctx, span := r.tracer.Start(ctx, "session.Registry.SignUp")
	defer span.End()

	s := r.newStore()

	user, session, err := s.SignUp(ctx, email, password, fullName)
	if err != nil {
		return nil, nil, err
	}

	if session != nil {
		r.register(ctx, session.Token, s)
	}

	return s, user, nil
}

func (r *Registry) SignIn(ctx context.Context, email, password string) (*Store, error) {
	ctx, span := r.tracer.Start(ctx, "session.Registry.SignIn")
	defer span.End()

	s := r.newStore()

	session, err := s.SignIn(ctx, email, password)
	if err != nil {
		return nil, err
	}

	r.register(ctx, session.Token, s)

	return s, nil
}

// Get returns the store of token, restoring it from the provider when the process has not seen it yet.
func (r *Registry) Get(ctx context.Context, token string) (*Store, error) {
	ctx, span := r.tracer.Start(ctx, "session.Registry.Get")
	defer span.End()

	if token == "" {
		return nil, identity.ErrSessionNotFound
	}

	r.mu.RLock()
	s, ok := r.stores[token]
	r.mu.RUnlock()

	if ok {
		expiresAt := s.ExpiresAt()
		if expiresAt.IsZero() || r.now().Before(expiresAt) {
			return s, nil
		}

		r.remove(token)
		s.Expire(ctx)

		return nil, identity.ErrSessionNotFound
	}

	s = r.newStore()
	if _, err := s.Restore(ctx, token); err != nil {
		return nil, err
	}

	return r.register(ctx, token, s), nil
}

func (r *Registry) SignOut(ctx context.Context, token string) error {
	ctx, span := r.tracer.Start(ctx, "session.Registry.SignOut")
	defer span.End()

	s, err := r.Get(ctx, token)
	if err != nil {
		return err
	}

	r.remove(token)

	return s.SignOut(ctx)
}

// VerifyToken resolves a bearer token into the id of its user.
func (r *Registry) VerifyToken(ctx context.Context, rawToken string) (string, error) {
	s, err := r.Get(ctx, rawToken)
	if err != nil {
		return "", err
	}

	user := s.User()
	if user == nil {
		return "", identity.ErrSessionNotFound
	}

	return user.ID, nil
}

func (r *Registry) newStore() *Store {
	return NewStore(r.provider, r.profiles, r.tracer, r.monitor, r.logger)
}

// register keeps the first store seen for a token, a concurrent restore of the same token is discarded.
func (r *Registry) register(ctx context.Context, token string, s *Store) *Store {
	r.mu.Lock()
	if existing, ok := r.stores[token]; ok {
		r.mu.Unlock()
		return existing
	}

	r.stores[token] = s
	listeners := append([]Listener(nil), r.listeners...)
	r.mu.Unlock()

	for _, l := range listeners {
		s.Subscribe(ctx, l)
	}

	return s
}

func (r *Registry) remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.stores, token)
}

func NewRegistry(provider ProviderInterface, profiles ProfileStorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Registry {
	r := new(Registry)

	r.stores = make(map[string]*Store)
	r.provider = provider
	r.profiles = profiles
	r.now = time.Now

	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}
