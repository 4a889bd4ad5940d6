package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

func TestResolveError(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"auth required", domain.ErrAuthRequired, http.StatusUnauthorized},
		{"session expired", domain.ErrSessionExpired, http.StatusUnauthorized},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"wizard missing", domain.ErrWizardNotFound, http.StatusNotFound},
		{"step incomplete", domain.ErrStepIncomplete, http.StatusUnprocessableEntity},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{"not guest booking", domain.ErrNotGuestBooking, http.StatusConflict},
		{"upstream 409 passes through", &domain.UpstreamError{StatusCode: 409, Message: "Slot taken"}, http.StatusConflict},
		{"upstream 500 becomes 502", &domain.UpstreamError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway},
		{"unexpected is 500", errTest, http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		code, _ := resolveError(tc.err, zerolog.Nop(), c)
		if code != tc.wantCode {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.wantCode, code)
		}
	}
}

func TestResolveError_UpstreamMessageSurvives(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_, msg := resolveError(&domain.UpstreamError{StatusCode: 409, Message: "Out of stock"}, zerolog.Nop(), c)
	if msg != "Out of stock" {
		t.Fatalf("expected upstream message verbatim, got %q", msg)
	}
}

func TestResolveError_InternalDetailsHidden(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	_, msg := resolveError(errTest, zerolog.Nop(), c)
	if msg != "internal server error" {
		t.Fatalf("unexpected errors must not leak, got %q", msg)
	}
}

var errTest = &testError{}

type testError struct{}

func (*testError) Error() string { return "redis: connection pool exhausted" }
