package cache

import (
	"context"
	"encoding/json"
	"time"

	"resonate/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// GetJSON reads key into dest and reports whether it was a hit. An unreachable
// Redis or an unparseable payload counts as a miss, so callers always fall
// through to the source of truth.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if Client == nil {
		return false
	}
	s, err := Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		middleware.Logger.Warn("cache read failed", "key", key, "error", err.Error())
		return false
	}
	if err := json.Unmarshal([]byte(s), dest); err != nil {
		middleware.Logger.Warn("cache entry malformed, treating as miss", "key", key)
		return false
	}
	return true
}

// SetJSON stores v under key with ttl, best-effort.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if Client == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := Client.Set(ctx, key, b, ttl).Err(); err != nil {
		middleware.Logger.Warn("cache write failed", "key", key, "error", err.Error())
	}
}

// CacheAside reads key into dest, calling fetch (which must fill dest) on a
// miss and caching the fetched value. Only fetch errors propagate; cache
// failures degrade to a straight fetch.
func CacheAside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if GetJSON(ctx, key, dest) {
		return nil
	}
	if err := fetch(); err != nil {
		return err
	}
	SetJSON(ctx, key, dest, ttl)
	return nil
}
