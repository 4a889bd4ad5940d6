package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// OrderClient implements ports.OrderAPI.
type OrderClient struct {
	c *Client
}

func NewOrderClient(c *Client) *OrderClient {
	return &OrderClient{c: c}
}

func (oc *OrderClient) Create(ctx context.Context, sess *domain.Session, paymentMethod string) (*domain.Order, error) {
	var order domain.Order
	body := map[string]string{"userId": sess.User.ID, "paymentMethod": paymentMethod}
	if err := oc.c.do(ctx, sess, http.MethodPost, "/orders/create", nil, body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (oc *OrderClient) Get(ctx context.Context, sess *domain.Session, id string) (*domain.Order, error) {
	var order domain.Order
	if err := oc.c.do(ctx, sess, http.MethodGet, "/orders/"+id, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (oc *OrderClient) ForUser(ctx context.Context, sess *domain.Session, userID string) ([]*domain.Order, error) {
	var orders []*domain.Order
	if err := oc.c.do(ctx, sess, http.MethodGet, "/orders/user/"+userID, nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (oc *OrderClient) Cancel(ctx context.Context, sess *domain.Session, id string) (*domain.Order, error) {
	var order domain.Order
	if err := oc.c.do(ctx, sess, http.MethodPut, "/orders/"+id+"/cancel", nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (oc *OrderClient) InitializePayment(ctx context.Context, sess *domain.Session, in ports.PaymentInput) (*domain.Payment, error) {
	var payment domain.Payment
	if err := oc.c.do(ctx, sess, http.MethodPost, "/orders/payment/initialize", nil, in, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (oc *OrderClient) VerifyPayment(ctx context.Context, sess *domain.Session, reference string) (*domain.Payment, error) {
	var payment domain.Payment
	q := url.Values{"reference": []string{reference}}
	if err := oc.c.do(ctx, sess, http.MethodPost, "/orders/payment/verify", q, nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
