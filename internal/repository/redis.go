package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
)

// NewRedis connects to Redis. It returns nil when addr is empty or the server
// is unreachable; callers treat a nil client as "cache disabled".
func NewRedis(ctx context.Context, addr, username, password string) *redis.Client {
	if addr == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, continuing without cache", "addr", addr, "error", err)
		client.Close()
		return nil
	}

	slog.Info("connected to redis", "addr", addr)
	return client
}
