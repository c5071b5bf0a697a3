// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "vendor-assess:"

// Redis is a Cache shared through a Redis server. Entries are kept twice
// as long as the freshness TTL so stale data can still serve as a fallback.
type Redis struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis connects to the server at addr and verifies it with PING.
func NewRedis(ctx context.Context, addr, password string, db int) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &Redis{rdb: rdb, ttl: defaultTTL}, nil
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}

func (r *Redis) IsFresh(ctx context.Context, key string) bool {
	raw, err := r.rdb.Get(ctx, metaKey(key)).Result()
	if err != nil {
		return false
	}
	downloadedAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return false
	}
	return time.Since(downloadedAt) < r.ttl
}

func (r *Redis) Exists(ctx context.Context, key string) bool {
	n, err := r.rdb.Exists(ctx, dataKey(key)).Result()
	return err == nil && n > 0
}

func (r *Redis) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.rdb.Get(ctx, dataKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("cache miss for %q", key)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %q from redis: %w", key, err)
	}
	return data, nil
}

func (r *Redis) Store(ctx context.Context, key string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, dataKey(key), data, 2*r.ttl)
		pipe.Set(ctx, metaKey(key), now, 2*r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("storing %q in redis: %w", key, err)
	}
	return nil
}

func dataKey(key string) string { return keyPrefix + "data:" + fileID(key) }
func metaKey(key string) string { return keyPrefix + "meta:" + fileID(key) }
