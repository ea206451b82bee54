// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package credentials

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/canonical/compliance-service/internal/types"
)

type StorageInterface interface {
	CreateCredential(ctx context.Context, c *types.Credential) error
	GetCredentialByEmail(ctx context.Context, email string) (*types.Credential, error)
}

// RevocationStoreInterface remembers signed out token ids until their natural expiry.
type RevocationStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	Revoked(ctx context.Context, tokenID string) (bool, error)
}

type RedisClientInterface interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}
