// SPDX-FileCopyrightText: 2026 Bonial International GmbH
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) *Redis {
	t.Helper()
	addr := os.Getenv("VENDOR_ASSESS_TEST_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r, err := NewRedis(ctx, addr, "", 1)
	if err != nil {
		t.Skip("Redis not available, skipping test")
	}
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestRedis_StoreLoad(t *testing.T) {
	r := setupRedis(t)
	ctx := context.Background()
	key := "test:" + t.Name() + time.Now().String()

	assert.False(t, r.Exists(ctx, key))
	assert.False(t, r.IsFresh(ctx, key))
	_, err := r.Load(ctx, key)
	require.Error(t, err)

	require.NoError(t, r.Store(ctx, key, []byte("payload")))

	assert.True(t, r.Exists(ctx, key))
	assert.True(t, r.IsFresh(ctx, key))
	got, err := r.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	require.NoError(t, r.rdb.Del(ctx, dataKey(key), metaKey(key)).Err())
}

func TestRedis_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewRedis(ctx, "127.0.0.1:1", "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to redis")
}

func TestRedisKeys(t *testing.T) {
	assert.NotEqual(t, dataKey("q"), metaKey("q"))
	assert.Contains(t, dataKey("q"), keyPrefix)
}
