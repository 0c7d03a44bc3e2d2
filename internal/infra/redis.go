package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis parses the connection URL and verifies the server answers before
// the caller wires the client into the cache and the email job queue.
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
