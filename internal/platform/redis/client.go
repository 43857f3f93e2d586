// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides a managed client for volatile data storage.

Medora keeps two kinds of short-lived state here: the denylist of revoked
token ids and the cached public product catalog.
*/
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultPoolSize = 10
	dialTimeout     = 3 * time.Second
	readTimeout     = 2 * time.Second
	writeTimeout    = 2 * time.Second
	pingTimeout     = 2 * time.Second
)

// BuildOptions parses redisURL and applies the Medora timeouts.
// A poolSize of zero keeps the default; idle connections scale with it.
func BuildOptions(redisURL string, poolSize int) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	options.PoolSize = poolSize
	options.MinIdleConns = max(1, poolSize/5)
	options.MaxIdleConns = max(1, poolSize/2)

	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout
	return options, nil
}

// NewClient connects to redisURL and pings the server before returning.
func NewClient(ctx context.Context, redisURL string, poolSize int, logger *zap.Logger) (*redis.Client, error) {
	options, err := BuildOptions(redisURL, poolSize)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		zap.String("addr", options.Addr),
		zap.Int("db", options.DB),
		zap.Int("pool_size", options.PoolSize),
	)
	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(ctx context.Context, client redis.UniversalClient) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}

	return nil
}
