package cache

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// TTL applied to every cached read-path entry
const TTL = 60 * time.Second

// Cache keys. The catalog key holds the public list of active raffles, the
// dashboard key the admin counters; both are invalidated together because
// every write that changes one changes the other.
const (
	KeyActiveRaffles = "raffles:active"
	KeyDashboard     = "admin:dashboard"
)

// Get retrieves a value from Redis and unmarshals it into dest. A nil client
// (Redis not configured) behaves as a permanent miss.
func Get(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores a value in Redis under key with the standard TTL
func Set(ctx context.Context, rdb *redis.Client, key string, value any) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, TTL).Err()
}

// InvalidateCatalog drops the cached raffle list and dashboard after any
// write that changes raffles or purchases
func InvalidateCatalog(ctx context.Context, rdb *redis.Client) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, KeyActiveRaffles, KeyDashboard)
}
