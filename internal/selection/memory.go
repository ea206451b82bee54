// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package selection

import (
	"context"
	"sync"
)

var _ SelectionStoreInterface = (*MemoryStore)(nil)

// MemoryStore is a process local store, selections are lost on restart.
type MemoryStore struct {
	mu         sync.RWMutex
	selections map[string]string
}

func (s *MemoryStore) Load(_ context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.selections[userID], nil
}

func (s *MemoryStore) Save(_ context.Context, userID, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selections[userID] = clientID

	return nil
}

func (s *MemoryStore) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.selections, userID)

	return nil
}

func NewMemoryStore() *MemoryStore {
	s := new(MemoryStore)
	s.selections = make(map[string]string)

	return s
}
