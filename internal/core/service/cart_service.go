package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/metrics"
	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// CartService caches the upstream cart per session. The cache is only ever
// written with a cart the upstream returned; totals and counts are never
// recomputed locally, so the cache cannot drift from the server.
type CartService struct {
	upstream ports.CartAPI
	cache    ports.CartCache
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewCartService(upstream ports.CartAPI, cache ports.CartCache, notifier ports.Notifier, log zerolog.Logger) *CartService {
	return &CartService{upstream: upstream, cache: cache, notifier: notifier, log: log}
}

// Cart returns the cached cart, fetching it when the cache is cold.
func (s *CartService) Cart(ctx context.Context, sess *domain.Session) (*domain.Cart, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	cart, err := s.cache.Get(ctx, sess.ID)
	if err == nil && cart != nil {
		return cart, nil
	}
	return s.Refresh(ctx, sess)
}

// Refresh re-fetches the cart from the upstream. A 404 means no cart exists
// yet and is treated as an empty cart, not an error.
func (s *CartService) Refresh(ctx context.Context, sess *domain.Session) (*domain.Cart, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrAuthRequired
	}

	cart, err := s.upstream.Get(ctx, sess, sess.User.ID)
	if err != nil {
		if domain.IsUpstreamStatus(err, 404) {
			cart = domain.EmptyCart(sess.User.ID)
		} else {
			s.log.Error().Err(err).Str("session_id", sess.ID).Msg("cart refresh failed")
			return nil, err
		}
	}

	if err := s.cache.Replace(ctx, sess.ID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// Add puts quantity units of a product in the cart.
func (s *CartService) Add(ctx context.Context, sess *domain.Session, productID string, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, sess, "add", "Item added to cart", func() (*domain.Cart, error) {
		return s.upstream.Add(ctx, sess, sess.User.ID, productID, quantity)
	})
}

// UpdateItem sets the quantity of an existing line.
func (s *CartService) UpdateItem(ctx context.Context, sess *domain.Session, productID string, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, sess, "update", "Cart updated", func() (*domain.Cart, error) {
		return s.upstream.Update(ctx, sess, sess.User.ID, productID, quantity)
	})
}

// Remove drops a line from the cart.
func (s *CartService) Remove(ctx context.Context, sess *domain.Session, productID string) (*domain.Cart, error) {
	return s.mutate(ctx, sess, "remove", "Item removed from cart", func() (*domain.Cart, error) {
		return s.upstream.Remove(ctx, sess, sess.User.ID, productID)
	})
}

// Clear empties the cart upstream and locally.
func (s *CartService) Clear(ctx context.Context, sess *domain.Session) error {
	if !sess.Authenticated() {
		s.notify(sess.ID, domain.NotifyError, "Authentication required", "Please log in to manage your cart")
		return domain.ErrAuthRequired
	}

	if err := s.upstream.Clear(ctx, sess, sess.User.ID); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("clear", "error").Inc()
		s.notify(sess.ID, domain.NotifyError, "Error", errMessage(err, "Failed to clear cart"))
		return err
	}

	if err := s.cache.Clear(ctx, sess.ID); err != nil {
		return err
	}
	metrics.CartOperationsTotal.WithLabelValues("clear", "ok").Inc()
	s.notify(sess.ID, domain.NotifySuccess, "Success", "Cart cleared")
	return nil
}

// ItemCount is a pure read of cached state, zero when no cart is loaded.
func (s *CartService) ItemCount(ctx context.Context, sess *domain.Session) int {
	if !sess.Authenticated() {
		return 0
	}
	cart, err := s.cache.Get(ctx, sess.ID)
	if err != nil || cart == nil {
		return 0
	}
	return cart.ItemCount
}

// Total is a pure read of cached state, zero when no cart is loaded.
func (s *CartService) Total(ctx context.Context, sess *domain.Session) float64 {
	if !sess.Authenticated() {
		return 0
	}
	cart, err := s.cache.Get(ctx, sess.ID)
	if err != nil || cart == nil {
		return 0
	}
	return cart.Total
}

// RefreshFor implements ports.CartSync: fired when a session becomes
// authenticated. Failures are logged only; login must not fail on a cold
// cart.
func (s *CartService) RefreshFor(ctx context.Context, sess *domain.Session) {
	if _, err := s.Refresh(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("cart sync on login failed")
	}
}

// ClearFor implements ports.CartSync: fired when a session stops being
// authenticated.
func (s *CartService) ClearFor(ctx context.Context, sid string) {
	if err := s.cache.Clear(ctx, sid); err != nil {
		s.log.Warn().Err(err).Str("session_id", sid).Msg("cart cache clear failed")
	}
}

// mutate is the shared single-request-then-replace cycle behind every cart
// mutation.
func (s *CartService) mutate(ctx context.Context, sess *domain.Session, op, successMsg string, call func() (*domain.Cart, error)) (*domain.Cart, error) {
	if !sess.Authenticated() {
		s.notify(sess.ID, domain.NotifyError, "Authentication required", "Please log in to manage your cart")
		return nil, domain.ErrAuthRequired
	}

	cart, err := call()
	if err != nil {
		metrics.CartOperationsTotal.WithLabelValues(op, "error").Inc()
		s.log.Error().Err(err).Str("session_id", sess.ID).Str("op", op).Msg("cart mutation failed")
		s.notify(sess.ID, domain.NotifyError, "Error", errMessage(err, "Cart operation failed"))
		return nil, err
	}

	if err := s.cache.Replace(ctx, sess.ID, cart); err != nil {
		return nil, err
	}
	metrics.CartOperationsTotal.WithLabelValues(op, "ok").Inc()
	s.notify(sess.ID, domain.NotifySuccess, "Success", successMsg)
	return cart, nil
}

func (s *CartService) notify(sid string, level domain.NotificationLevel, title, msg string) {
	s.notifier.Notify(domain.Notification{
		SessionID: sid,
		Level:     level,
		Title:     title,
		Message:   msg,
		At:        time.Now().UTC(),
	})
}

// errMessage prefers the upstream's message when it has one.
func errMessage(err error, fallback string) string {
	if ue, ok := err.(*domain.UpstreamError); ok && ue.Message != "" {
		return ue.Message
	}
	return fallback
}
