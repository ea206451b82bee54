// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package selection

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// SelectionStoreInterface persists the active client id of each user.
// Load returns an empty string when nothing was saved.
type SelectionStoreInterface interface {
	Load(ctx context.Context, userID string) (string, error)
	Save(ctx context.Context, userID, clientID string) error
	Clear(ctx context.Context, userID string) error
}

type RedisClientInterface interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}
