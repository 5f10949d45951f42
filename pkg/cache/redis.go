// Package cache provides Redis-backed JSON caching plus the TTL key-value
// store used for pending OTP registrations.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shashiranjanraj/vastra/config"
)

var RDB *redis.Client

// Connect initialises the shared Redis client and verifies the connection
// with a ping. Returns an error so the caller can react (log a warning and
// fall back to in-memory drivers, or abort).
func Connect(ctx context.Context) error {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := RDB.Ping(ctx).Err(); err != nil {
		RDB = nil // mark as unavailable so Get/Set/Forget no-op safely
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	return nil
}

// Get unmarshals the cached JSON value at key into dest.
// Returns false on miss, connection failure, or decode failure.
func Get(ctx context.Context, key string, dest interface{}) bool {
	if RDB == nil {
		return false
	}

	val, err := RDB.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false
	}

	return true
}

// Set stores value as JSON at key with the given TTL (0 = no expiry).
func Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return RDB.Set(ctx, key, data, ttl).Err()
}

// Forget removes key from the cache.
func Forget(ctx context.Context, key string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(ctx, key).Err()
}
