// Package cache provides Redis-backed caching helpers. All helpers degrade
// gracefully when Redis is unavailable.
package cache

import (
	"context"
	"errors"
	"time"

	"resonate/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// Client is the shared Redis client. Nil when Redis is unreachable; every
// helper in this package treats a nil client as a cache miss.
var Client *redis.Client

// metricsHook counts failed Redis commands by command name.
type metricsHook struct{}

func (metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// InitRedis connects to Redis at addr. On failure the application continues
// without a cache.
func InitRedis(addr string) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	client.AddHook(metricsHook{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		middleware.Logger.Warn("Redis connection failed, continuing without cache", "error", err.Error())
		Client = nil
		return
	}

	middleware.Logger.Info("Redis connected successfully")
	Client = client
}

// GetClient returns the shared Redis client, which may be nil.
func GetClient() *redis.Client {
	return Client
}
