// Package cache provides the Redis client used for shared counters.
// It supports both embedded Redis (miniredis) and an external Redis server.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/careerconnect/careerconnect/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var (
	client    *redis.Client
	miniRedis *miniredis.Miniredis
)

// InitRedis initializes the Redis client. If redisAddr is empty, it starts
// an embedded Redis.
func InitRedis(redisAddr string) error {
	if redisAddr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return fmt.Errorf("failed to start embedded Redis: %w", err)
		}
		miniRedis = mr
		client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		logger.Info("Embedded Redis started on", mr.Addr())
		return nil
	}

	client = redis.NewClient(&redis.Options{Addr: redisAddr})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return fmt.Errorf("failed to connect to Redis at %s: %w", redisAddr, err)
	}
	logger.Info("Connected to external Redis at", redisAddr)
	return nil
}

// GetClient returns the Redis client instance.
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection and stops embedded Redis if running.
func Close() error {
	var err error
	if client != nil {
		err = client.Close()
		client = nil
	}
	if miniRedis != nil {
		miniRedis.Close()
		miniRedis = nil
	}
	return err
}

// Counter counts hits in Redis so that several instances share one limit.
type Counter struct {
	client *redis.Client
}

func NewCounter(c *redis.Client) *Counter {
	return &Counter{client: c}
}

// Incr bumps key and sets its expiry on the first hit of a window.
func (r *Counter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	if r.client == nil {
		return 0, fmt.Errorf("Redis client not initialized")
	}
	n, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, key, window).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}
