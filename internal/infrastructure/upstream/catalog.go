package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// CatalogClient implements ports.CatalogAPI.
type CatalogClient struct {
	c *Client
}

func NewCatalogClient(c *Client) *CatalogClient {
	return &CatalogClient{c: c}
}

// ── Products ──────────────────────────────────────────────────────────────────

func (cc *CatalogClient) Products(ctx context.Context) ([]*domain.Product, error) {
	var out []*domain.Product
	if err := cc.c.do(ctx, nil, http.MethodGet, "/products", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) Product(ctx context.Context, id string) (*domain.Product, error) {
	var out domain.Product
	if err := cc.c.do(ctx, nil, http.MethodGet, "/products/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) ProductsByCategory(ctx context.Context, category string) ([]*domain.Product, error) {
	var out []*domain.Product
	if err := cc.c.do(ctx, nil, http.MethodGet, "/products/category/"+url.PathEscape(category), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	var out []*domain.Product
	q := url.Values{"q": []string{query}}
	if err := cc.c.do(ctx, nil, http.MethodGet, "/products/search", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) AvailableProducts(ctx context.Context) ([]*domain.Product, error) {
	var out []*domain.Product
	if err := cc.c.do(ctx, nil, http.MethodGet, "/products/available", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) CreateProduct(ctx context.Context, sess *domain.Session, in ports.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := cc.c.do(ctx, sess, http.MethodPost, "/products", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) UpdateProduct(ctx context.Context, sess *domain.Session, id string, in ports.ProductInput) (*domain.Product, error) {
	var out domain.Product
	if err := cc.c.do(ctx, sess, http.MethodPut, "/products/"+id, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) DeleteProduct(ctx context.Context, sess *domain.Session, id string) error {
	return cc.c.do(ctx, sess, http.MethodDelete, "/products/"+id, nil, nil, nil)
}

// ── Services ──────────────────────────────────────────────────────────────────

func (cc *CatalogClient) Services(ctx context.Context) ([]*domain.Service, error) {
	var out []*domain.Service
	if err := cc.c.do(ctx, nil, http.MethodGet, "/services", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) Service(ctx context.Context, id string) (*domain.Service, error) {
	var out domain.Service
	if err := cc.c.do(ctx, nil, http.MethodGet, "/services/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) AvailableServices(ctx context.Context) ([]*domain.Service, error) {
	var out []*domain.Service
	if err := cc.c.do(ctx, nil, http.MethodGet, "/services/available", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) ServicesByCategory(ctx context.Context, category string) ([]*domain.Service, error) {
	var out []*domain.Service
	if err := cc.c.do(ctx, nil, http.MethodGet, "/services/category/"+url.PathEscape(category), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) CreateService(ctx context.Context, sess *domain.Session, in ports.ServiceInput) (*domain.Service, error) {
	var out domain.Service
	if err := cc.c.do(ctx, sess, http.MethodPost, "/services", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) UpdateService(ctx context.Context, sess *domain.Session, id string, in ports.ServiceInput) (*domain.Service, error) {
	var out domain.Service
	if err := cc.c.do(ctx, sess, http.MethodPut, "/services/"+id, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) DeleteService(ctx context.Context, sess *domain.Session, id string) error {
	return cc.c.do(ctx, sess, http.MethodDelete, "/services/"+id, nil, nil, nil)
}

// ── Testimonials ──────────────────────────────────────────────────────────────

func (cc *CatalogClient) ApprovedTestimonials(ctx context.Context) ([]*domain.Testimonial, error) {
	var out []*domain.Testimonial
	if err := cc.c.do(ctx, nil, http.MethodGet, "/testimonials/approved", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) Testimonial(ctx context.Context, id string) (*domain.Testimonial, error) {
	var out domain.Testimonial
	if err := cc.c.do(ctx, nil, http.MethodGet, "/testimonials/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) TestimonialsForUser(ctx context.Context, sess *domain.Session, userID string) ([]*domain.Testimonial, error) {
	var out []*domain.Testimonial
	if err := cc.c.do(ctx, sess, http.MethodGet, "/testimonials/user/"+userID, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CatalogClient) CreateTestimonial(ctx context.Context, sess *domain.Session, in ports.TestimonialInput) (*domain.Testimonial, error) {
	var out domain.Testimonial
	if err := cc.c.do(ctx, sess, http.MethodPost, "/testimonials", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) UpdateTestimonial(ctx context.Context, sess *domain.Session, id string, approved bool) (*domain.Testimonial, error) {
	var out domain.Testimonial
	body := map[string]bool{"approved": approved}
	if err := cc.c.do(ctx, sess, http.MethodPut, "/testimonials/"+id, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (cc *CatalogClient) DeleteTestimonial(ctx context.Context, sess *domain.Session, id string) error {
	return cc.c.do(ctx, sess, http.MethodDelete, "/testimonials/"+id, nil, nil, nil)
}

func (cc *CatalogClient) AverageRating(ctx context.Context) (float64, error) {
	var rating float64
	if err := cc.c.do(ctx, nil, http.MethodGet, "/testimonials/average-rating", nil, nil, &rating); err != nil {
		return 0, err
	}
	return rating, nil
}
