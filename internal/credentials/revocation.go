// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
	"fmt"
	"sync"
	"time"
)

const revokedKeyPrefix = "revoked:"

var (
	_ RevocationStoreInterface = (*RedisRevocations)(nil)
	_ RevocationStoreInterface = (*MemoryRevocations)(nil)
)

type RedisRevocations struct {
	client RedisClientInterface
}

func (r *RedisRevocations) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

func (r *RedisRevocations) Revoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return n > 0, nil
}

func NewRedisRevocations(client RedisClientInterface) *RedisRevocations {
	r := new(RedisRevocations)
	r.client = client

	return r
}

// MemoryRevocations is used when no Redis address is configured.
type MemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time

	now func() time.Time
}

func (r *MemoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, until := range r.revoked {
		if !until.After(now) {
			delete(r.revoked, id)
		}
	}

	r.revoked[tokenID] = now.Add(ttl)

	return nil
}

func (r *MemoryRevocations) Revoked(_ context.Context, tokenID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	until, ok := r.revoked[tokenID]

	return ok && until.After(r.now()), nil
}

func NewMemoryRevocations() *MemoryRevocations {
	r := new(MemoryRevocations)
	r.revoked = make(map[string]time.Time)
	r.now = time.Now

	return r
}
