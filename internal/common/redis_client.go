package common

import (
	"context"
	"time"

	"infinite-experiment/logbook/internal/config"
	"infinite-experiment/logbook/internal/logging"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(cfg config.Redis) *redis.Client {
	logging.Info("Initializing Redis client", "addr", cfg.Addr())

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Warn("Failed to ping Redis", "error", err.Error())
		return client // Still return the client, connection pool will try to reconnect
	}

	logging.Info("Connected to Redis")
	return client
}

// NewCache returns a Redis-backed cache when Redis is configured, otherwise an in-memory one
func NewCache(cfg config.Redis) CacheInterface {
	if cfg.Enabled() {
		return NewRedisCacheService(NewRedisClient(cfg))
	}
	return NewCacheService(10*time.Minute, 10*time.Minute)
}
