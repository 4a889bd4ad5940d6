package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// BookingClient implements ports.BookingAPI.
type BookingClient struct {
	c *Client
}

func NewBookingClient(c *Client) *BookingClient {
	return &BookingClient{c: c}
}

func (bc *BookingClient) Create(ctx context.Context, sess *domain.Session, req ports.BookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := bc.c.do(ctx, sess, http.MethodPost, "/bookings", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// CreateGuest submits without any session, so no bearer token is attached.
func (bc *BookingClient) CreateGuest(ctx context.Context, req ports.BookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := bc.c.do(ctx, nil, http.MethodPost, "/bookings/guest", nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// LinkAll retroactively associates all guest bookings matching email with
// userID. The upstream matches on email, making repeats idempotent.
func (bc *BookingClient) LinkAll(ctx context.Context, email, userID string) error {
	q := url.Values{"email": []string{email}, "userId": []string{userID}}
	return bc.c.do(ctx, nil, http.MethodPost, "/bookings/link-all", q, nil, nil)
}

func (bc *BookingClient) AvailableSlots(ctx context.Context, serviceID, date string) ([]string, error) {
	q := url.Values{"serviceId": []string{serviceID}, "date": []string{date}}
	var slots []string
	if err := bc.c.do(ctx, nil, http.MethodGet, "/bookings/available-slots", q, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (bc *BookingClient) ForUser(ctx context.Context, sess *domain.Session, userID string) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	if err := bc.c.do(ctx, sess, http.MethodGet, "/bookings/user/"+userID, nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (bc *BookingClient) Get(ctx context.Context, sess *domain.Session, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := bc.c.do(ctx, sess, http.MethodGet, "/bookings/"+id, nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (bc *BookingClient) List(ctx context.Context, sess *domain.Session) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	if err := bc.c.do(ctx, sess, http.MethodGet, "/bookings", nil, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (bc *BookingClient) Update(ctx context.Context, sess *domain.Session, id string, req ports.BookingRequest) (*domain.Booking, error) {
	var booking domain.Booking
	if err := bc.c.do(ctx, sess, http.MethodPut, "/bookings/"+id, nil, req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (bc *BookingClient) Cancel(ctx context.Context, sess *domain.Session, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := bc.c.do(ctx, sess, http.MethodPut, "/bookings/"+id+"/cancel", nil, nil, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}
