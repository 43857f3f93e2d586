// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/medora/internal/platform/constants"
)

// RevocationStore remembers logged-out tokens until they would have expired anyway.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocationStore implements [RevocationStore] with one expiring key per token.
type RedisRevocationStore struct {
	client redis.UniversalClient
}

// NewRedisRevocationStore creates a Redis-backed revocation list.
func NewRedisRevocationStore(client redis.UniversalClient) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

/*
Revoke stores the token id with a TTL equal to the token's remaining lifetime.

Parameters:
  - ctx: context.Context
  - tokenID: the jti claim
  - ttl: time left until the token expires

Returns:
  - error: Redis failures
*/
func (store *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if err := store.client.Set(ctx, constants.RedisPrefixRevokedToken+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_revoke_token_failed: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID was revoked.
func (store *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	count, err := store.client.Exists(ctx, constants.RedisPrefixRevokedToken+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revocation_lookup_failed: %w", err)
	}
	return count > 0, nil
}
