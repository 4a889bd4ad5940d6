package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]*domain.Session
}

func (s *stubSessionStore) Create(context.Context) (*domain.Session, error) {
	return &domain.Session{ID: "sess_1"}, nil
}

func (s *stubSessionStore) Get(_ context.Context, sid string) (*domain.Session, error) {
	sess, ok := s.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) SaveAuth(context.Context, string, *domain.User, string, string) error {
	return nil
}

func (s *stubSessionStore) SaveUser(context.Context, string, *domain.User) error { return nil }

func (s *stubSessionStore) SaveToken(context.Context, string, string) error { return nil }

func (s *stubSessionStore) ClearAuth(context.Context, string) error { return nil }

func TestSessionMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	store := &stubSessionStore{sessions: map[string]*domain.Session{
		"sess_1": {ID: "sess_1"},
	}}

	signed, err := IssueSessionToken("secret", "sess_1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := Session("secret", store)
	handler := mw(func(c echo.Context) error {
		called = true
		sess, _ := c.Get(SessionKey).(*domain.Session)
		if sess == nil || sess.ID != "sess_1" {
			t.Fatalf("session not injected: %+v", sess)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestSessionMiddleware_MissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("secret", &stubSessionStore{sessions: map[string]*domain.Session{}})
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

func TestSessionMiddleware_WrongSecret(t *testing.T) {
	e := echo.New()
	signed, err := IssueSessionToken("other-secret", "sess_1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("secret", &stubSessionStore{sessions: map[string]*domain.Session{}})
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

func TestSessionMiddleware_UnknownSession(t *testing.T) {
	e := echo.New()
	signed, err := IssueSessionToken("secret", "sess_gone")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session("secret", &stubSessionStore{sessions: map[string]*domain.Session{}})
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
