package ports

import (
	"context"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// CartService is the gateway's cart store. Every mutation requires an
// authenticated session, issues exactly one upstream request, and replaces
// the cached cart with the upstream response wholesale. No quantity or total
// arithmetic happens on this side.
type CartService interface {
	Cart(ctx context.Context, sess *domain.Session) (*domain.Cart, error)
	Refresh(ctx context.Context, sess *domain.Session) (*domain.Cart, error)
	Add(ctx context.Context, sess *domain.Session, productID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, sess *domain.Session, productID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, sess *domain.Session, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, sess *domain.Session) error
	ItemCount(ctx context.Context, sess *domain.Session) int
	Total(ctx context.Context, sess *domain.Session) float64
}
