package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

const cartTTL = time.Hour

// CartCache holds the gateway's copy of the upstream cart under cart:<sid>.
// Only complete upstream responses are ever written here.
type CartCache struct {
	client *redis.Client
}

func NewCartCache(client *redis.Client) *CartCache {
	return &CartCache{client: client}
}

func (c *CartCache) Get(ctx context.Context, sid string) (*domain.Cart, error) {
	raw, err := c.client.Get(ctx, cartKey(sid)).Result()
	if err == redis.Nil {
		return nil, domain.ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cart cache get: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, fmt.Errorf("cart cache get: decode: %w", err)
	}
	return &cart, nil
}

func (c *CartCache) Replace(ctx context.Context, sid string, cart *domain.Cart) error {
	raw, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart cache replace: encode: %w", err)
	}
	if err := c.client.Set(ctx, cartKey(sid), raw, cartTTL).Err(); err != nil {
		return fmt.Errorf("cart cache replace: %w", err)
	}
	return nil
}

func (c *CartCache) Clear(ctx context.Context, sid string) error {
	if err := c.client.Del(ctx, cartKey(sid)).Err(); err != nil {
		return fmt.Errorf("cart cache clear: %w", err)
	}
	return nil
}

func cartKey(sid string) string {
	return "cart:" + sid
}
