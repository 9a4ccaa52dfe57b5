// credstore/redis_test.go
package credstore

import (
	"testing"
	"time"

	"github.com/CharlSquash/go-solosync-client/logger"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, config RedisStoreConfig) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, config, logger.NewNopLogger()), mr
}

func TestRedisStoreGetSetClear(t *testing.T) {
	store, _ := newTestRedisStore(t, RedisStoreConfig{Namespace: "solosync:test"})

	_, ok := store.Get(KeyAccessToken)
	assert.False(t, ok)

	store.Set(KeyAccessToken, "token-1")
	value, ok := store.Get(KeyAccessToken)
	assert.True(t, ok)
	assert.Equal(t, "token-1", value)

	store.Clear(KeyAccessToken)
	_, ok = store.Get(KeyAccessToken)
	assert.False(t, ok)
}

func TestRedisStoreNamespacing(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	storeA := NewRedisStore(client, RedisStoreConfig{Namespace: "solosync:a"}, logger.NewNopLogger())
	storeB := NewRedisStore(client, RedisStoreConfig{Namespace: "solosync:b"}, logger.NewNopLogger())

	storeA.Set(KeyRefreshToken, "refresh-a")

	_, ok := storeB.Get(KeyRefreshToken)
	assert.False(t, ok, "stores with distinct namespaces must not share credentials")

	value, ok := storeA.Get(KeyRefreshToken)
	assert.True(t, ok)
	assert.Equal(t, "refresh-a", value)
}

func TestRedisStoreTTL(t *testing.T) {
	store, mr := newTestRedisStore(t, RedisStoreConfig{Namespace: "solosync:ttl", TTL: time.Minute})

	store.Set(KeyAccessToken, "short-lived")
	_, ok := store.Get(KeyAccessToken)
	assert.True(t, ok)

	mr.FastForward(2 * time.Minute)

	_, ok = store.Get(KeyAccessToken)
	assert.False(t, ok, "credential should expire after the configured TTL")
}
