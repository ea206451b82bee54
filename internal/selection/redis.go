// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package selection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/canonical/compliance-service/internal/logging"
	"github.com/canonical/compliance-service/internal/monitoring"
	"github.com/canonical/compliance-service/internal/tracing"
)

const keyPrefix = "selection:"

var _ SelectionStoreInterface = (*RedisStore)(nil)

// RedisStore keeps one key per user: selection:<user id> -> client id.
type RedisStore struct {
	client RedisClientInterface
	ttl    time.Duration

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (s *RedisStore) key(userID string) string {
	return keyPrefix + userID
}

func (s *RedisStore) Load(ctx context.Context, userID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, "selection.RedisStore.Load")
	defer span.End()

	v, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load selection: %w", err)
	}

	return v, nil
}

func (s *RedisStore) Save(ctx context.Context, userID, clientID string) error {
	ctx, span := s.tracer.Start(ctx, "selection.RedisStore.Save")
	defer span.End()

	if err := s.client.Set(ctx, s.key(userID), clientID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}

	return nil
}

func (s *RedisStore) Clear(ctx context.Context, userID string) error {
	ctx, span := s.tracer.Start(ctx, "selection.RedisStore.Clear")
	defer span.End()

	if err := s.client.Del(ctx, s.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear selection: %w", err)
	}

	return nil
}

// NewRedisStore builds a store over client, a zero ttl keeps selections forever.
func NewRedisStore(client RedisClientInterface, ttl time.Duration, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *RedisStore {
	s := new(RedisStore)

	s.client = client
	s.ttl = ttl

	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}
