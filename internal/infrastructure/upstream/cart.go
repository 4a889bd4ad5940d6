package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// CartClient implements ports.CartAPI. All cart endpoints are keyed by a
// userId query parameter.
type CartClient struct {
	c *Client
}

func NewCartClient(c *Client) *CartClient {
	return &CartClient{c: c}
}

func userQuery(userID string) url.Values {
	return url.Values{"userId": []string{userID}}
}

func (cc *CartClient) Get(ctx context.Context, sess *domain.Session, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	if err := cc.c.do(ctx, sess, http.MethodGet, "/cart", userQuery(userID), nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) Add(ctx context.Context, sess *domain.Session, userID, productID string, quantity int) (*domain.Cart, error) {
	var cart domain.Cart
	body := map[string]any{"productId": productID, "quantity": quantity}
	if err := cc.c.do(ctx, sess, http.MethodPost, "/cart/add", userQuery(userID), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) Update(ctx context.Context, sess *domain.Session, userID, productID string, quantity int) (*domain.Cart, error) {
	var cart domain.Cart
	body := map[string]any{"productId": productID, "quantity": quantity}
	if err := cc.c.do(ctx, sess, http.MethodPut, "/cart/update", userQuery(userID), body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) Remove(ctx context.Context, sess *domain.Session, userID, productID string) (*domain.Cart, error) {
	var cart domain.Cart
	q := userQuery(userID)
	q.Set("productId", productID)
	if err := cc.c.do(ctx, sess, http.MethodDelete, "/cart/remove", q, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (cc *CartClient) Clear(ctx context.Context, sess *domain.Session, userID string) error {
	return cc.c.do(ctx, sess, http.MethodDelete, "/cart/clear", userQuery(userID), nil, nil)
}
