// Package redis holds the gateway's per-session state: identities, wizard
// progress and the cached cart. Redis plays the role a browser's local
// storage would; everything here is reconstructible from upstream.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/threekst/storefront-gateway/internal/infrastructure/config"
)

const connectTimeout = 5 * time.Second

// Connect initialises a Redis client from the gateway configuration and
// validates connectivity with a ping.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
