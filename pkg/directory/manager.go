// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package directory

import (
	"context"
	"sync"
	"time"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/tracing"
	"github.com/canonical/compliance-service/internal/types"
)

var _ ManagerInterface = (*Manager)(nil)

// Manager owns one directory per signed in user.
type Manager struct {
	mu          sync.Mutex
	directories map[string]*Directory

	storage            StorageInterface
	authz              AuthorizerInterface
	selection          SelectionStoreInterface
	invitationLifetime time.Duration

	tracer tracing.TracingInterface
	logger logging.LoggerInterface
}

// ForUser returns the directory of userID, loading it on first use.
func (m *Manager) ForUser(ctx context.Context, userID string) DirectoryInterface {
	return m.directory(ctx, userID)
}

func (m *Manager) directory(ctx context.Context, userID string) *Directory {
	d, _ := m.lookup(ctx, userID)
	return d
}

// lookup returns the directory of userID and whether it was already cached.
// A new directory is loaded before it is returned.
func (m *Manager) lookup(ctx context.Context, userID string) (*Directory, bool) {
	m.mu.Lock()
	d, ok := m.directories[userID]
	if ok {
		m.mu.Unlock()
		return d, true
	}

	d = NewDirectory(m.storage, m.authz, m.selection, m.invitationLifetime, m.tracer, m.logger)
	gen := d.begin(userID)
	m.directories[userID] = d
	m.mu.Unlock()

	// the directory outlives the request that triggered its first load
	d.fetch(context.WithoutCancel(ctx), gen, userID)

	return d, false
}

// Drop resets and forgets the directory of userID.
func (m *Manager) Drop(userID string) {
	m.mu.Lock()
	d, ok := m.directories[userID]
	delete(m.directories, userID)
	m.mu.Unlock()

	if ok {
		d.Reset()
	}
}

// OnSessionChange is a session listener: signing out drops the directory, signing in
// loads it, or reloads it when the user already had one.
func (m *Manager) OnSessionChange(ctx context.Context, prev, next *types.User) {
	if prev != nil && (next == nil || prev.ID != next.ID) {
		m.Drop(prev.ID)
	}

	if next == nil {
		return
	}

	if d, cached := m.lookup(ctx, next.ID); cached {
		d.Load(context.WithoutCancel(ctx), next.ID)
	}
}

func NewManager(
	storage StorageInterface,
	authz AuthorizerInterface,
	selection SelectionStoreInterface,
	invitationLifetime time.Duration,
	tracer tracing.TracingInterface,
	logger logging.LoggerInterface,
) *Manager {
	m := new(Manager)

	m.directories = make(map[string]*Directory)
	m.storage = storage
	m.authz = authz
	m.selection = selection
	m.invitationLifetime = invitationLifetime

	m.tracer = tracer
	m.logger = logger

	return m
}
