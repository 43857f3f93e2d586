// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package cache implements a read-through byte cache in front of Redis.

Concurrent misses for the same key are collapsed with singleflight so that a
cold catalog does not send a burst of identical queries to PostgreSQL.
*/
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ErrMiss is returned by a [Store] when the key is absent.
var ErrMiss = errors.New("cache: miss")

// Store is the minimal key-value surface the cache needs.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// # Redis Store

// RedisStore adapts a go-redis client to [Store].
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return value, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// # Read-through Cache

// Cache serves values from a [Store] and loads misses once per key.
type Cache struct {
	store Store
	group singleflight.Group
}

// New constructs a [Cache] over store.
func New(store Store) *Cache {
	return &Cache{store: store}
}

// GetOrLoad returns the cached bytes for key, calling load on a miss.
//
// Store failures degrade to a direct load; a cache outage never fails a read.
func (c *Cache) GetOrLoad(ctx context.Context, key string, ttl time.Duration, load func(context.Context) ([]byte, error)) ([]byte, error) {
	if value, err := c.store.Get(ctx, key); err == nil {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.store.Set(ctx, key, loaded, ttl)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

// Invalidate removes keys. Callers invoke it after every write to the source.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) error {
	return c.store.Del(ctx, keys...)
}

// GetOrLoadJSON is [Cache.GetOrLoad] with JSON encoding of T.
func GetOrLoadJSON[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	var out T

	raw, err := c.GetOrLoad(ctx, key, ttl, func(ctx context.Context) ([]byte, error) {
		value, err := load(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(value)
	})
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("cache: decode %q: %w", key, err)
	}
	return out, nil
}
