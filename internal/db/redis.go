package db

import (
	"context"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient creates and returns a new Redis client connected to addr.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// Ping the server to ensure the connection is established.
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
