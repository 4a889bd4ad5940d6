package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

type stubCatalogAPI struct {
	ports.CatalogAPI
	all            []*domain.Product
	available      []*domain.Product
	testimonial    *domain.Testimonial
	testimonialErr error
	allCalls       int
	availableCalls int
}

func (s *stubCatalogAPI) Products(context.Context) ([]*domain.Product, error) {
	s.allCalls++
	return s.all, nil
}

func (s *stubCatalogAPI) AvailableProducts(context.Context) ([]*domain.Product, error) {
	s.availableCalls++
	return s.available, nil
}

func (s *stubCatalogAPI) Testimonial(context.Context, string) (*domain.Testimonial, error) {
	return s.testimonial, s.testimonialErr
}

func TestProducts_DefaultsToAvailable(t *testing.T) {
	catalog := &stubCatalogAPI{available: []*domain.Product{{ID: "p1", Available: true}}}
	h := NewCatalogHandler(catalog)

	c, rec := newEchoContext(t, http.MethodGet, "/products", "", nil)
	if err := h.Products(c); err != nil {
		t.Fatalf("products: %v", err)
	}
	if catalog.availableCalls != 1 || catalog.allCalls != 0 {
		t.Fatalf("default listing must serve available products only")
	}

	var got []*domain.Product
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(got) != 1 || got[0].ID != "p1" {
		t.Fatalf("unexpected product list: %+v", got)
	}
}

func TestProducts_AllIncludesUnavailable(t *testing.T) {
	catalog := &stubCatalogAPI{all: []*domain.Product{
		{ID: "p1", Available: true},
		{ID: "p2", Available: false},
	}}
	h := NewCatalogHandler(catalog)

	c, _ := newEchoContext(t, http.MethodGet, "/products?all=true", "", nil)
	if err := h.Products(c); err != nil {
		t.Fatalf("products: %v", err)
	}
	if catalog.allCalls != 1 || catalog.availableCalls != 0 {
		t.Fatalf("all=true must serve the full catalog")
	}
}

func TestTestimonial_ByID(t *testing.T) {
	catalog := &stubCatalogAPI{testimonial: &domain.Testimonial{ID: "t1", Content: "Great cut", Rating: 5}}
	h := NewCatalogHandler(catalog)

	c, rec := newEchoContext(t, http.MethodGet, "/testimonials/t1", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("t1")
	if err := h.Testimonial(c); err != nil {
		t.Fatalf("testimonial: %v", err)
	}

	var got domain.Testimonial
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != "t1" || got.Rating != 5 {
		t.Fatalf("unexpected testimonial: %+v", got)
	}
}

func TestTestimonial_UpstreamErrorPropagates(t *testing.T) {
	catalog := &stubCatalogAPI{testimonialErr: &domain.UpstreamError{StatusCode: 404, Message: "Not found"}}
	h := NewCatalogHandler(catalog)

	c, _ := newEchoContext(t, http.MethodGet, "/testimonials/missing", "", nil)
	c.SetParamNames("id")
	c.SetParamValues("missing")

	err := h.Testimonial(c)
	if !domain.IsUpstreamStatus(err, http.StatusNotFound) {
		t.Fatalf("expected the upstream 404 to propagate, got %v", err)
	}
}
