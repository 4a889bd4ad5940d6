package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

func rbacContext(e *echo.Echo, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(SessionKey, sess)
	}
	return c, rec
}

func TestRequireRoles_AllowsAdmin(t *testing.T) {
	e := echo.New()
	sess := &domain.Session{
		ID:    "sess_1",
		User:  &domain.User{ID: "usr_1", Role: domain.RoleAdmin},
		Token: "tok",
	}
	c, rec := rbacContext(e, sess)

	called := false
	mw := RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin)
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireRoles_RejectsCustomer(t *testing.T) {
	e := echo.New()
	sess := &domain.Session{
		ID:    "sess_1",
		User:  &domain.User{ID: "usr_1", Role: domain.RoleCustomer},
		Token: "tok",
	}
	c, rec := rbacContext(e, sess)

	mw := RequireRoles(domain.RoleAdmin, domain.RoleSuperAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireRoles_RejectsAnonymousSession(t *testing.T) {
	e := echo.New()
	c, rec := rbacContext(e, &domain.Session{ID: "sess_1"})

	mw := RequireRoles(domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoles_RejectsMissingSession(t *testing.T) {
	e := echo.New()
	c, rec := rbacContext(e, nil)

	mw := RequireRoles(domain.RoleAdmin)
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
