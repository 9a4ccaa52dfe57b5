// credstore/redis.go
package credstore

import (
	"context"
	"time"

	"github.com/CharlSquash/go-solosync-client/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisStore is a Store implementation backed by Redis, for processes that want the
// session to survive a restart. Keys are namespaced per client instance so two
// independent sessions in separate processes do not clobber each other.
type RedisStore struct {
	client    redis.UniversalClient
	namespace string
	ttl       time.Duration
	log       logger.Logger
}

// RedisStoreConfig configures a RedisStore.
type RedisStoreConfig struct {
	// Namespace is prepended to every key, e.g. "solosync:default".
	Namespace string
	// TTL bounds how long a stored credential lives without being rewritten.
	// Zero means no expiry.
	TTL time.Duration
}

// NewRedisStore creates a RedisStore on top of an existing Redis client.
func NewRedisStore(client redis.UniversalClient, config RedisStoreConfig, log logger.Logger) *RedisStore {
	if config.Namespace == "" {
		config.Namespace = "solosync:default"
	}
	return &RedisStore{
		client:    client,
		namespace: config.Namespace,
		ttl:       config.TTL,
		log:       log,
	}
}

var _ Store = (*RedisStore)(nil)

func (r *RedisStore) key(key string) string {
	return r.namespace + ":" + key
}

// Get returns the value for key and whether it is present. Redis errors other
// than a missing key are logged and reported as absent; the caller treats a
// missing credential as "not logged in" rather than a hard failure.
func (r *RedisStore) Get(key string) (string, bool) {
	value, err := r.client.Get(context.Background(), r.key(key)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		r.log.Warn("Failed to read credential from redis", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if value == "" {
		return "", false
	}
	return value, true
}

// Set stores value under key, replacing any previous value.
func (r *RedisStore) Set(key, value string) {
	if err := r.client.Set(context.Background(), r.key(key), value, r.ttl).Err(); err != nil {
		r.log.Warn("Failed to write credential to redis", zap.String("key", key), zap.Error(err))
	}
}

// Clear removes the value stored under key.
func (r *RedisStore) Clear(key string) {
	if err := r.client.Del(context.Background(), r.key(key)).Err(); err != nil {
		r.log.Warn("Failed to clear credential from redis", zap.String("key", key), zap.Error(err))
	}
}
