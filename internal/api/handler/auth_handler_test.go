package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/threekst/storefront-gateway/internal/api/middleware"
	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

type stubAuthService struct {
	ports.AuthService
	startSessionFn func(ctx context.Context) (*domain.Session, error)
	loginFn        func(ctx context.Context, sess *domain.Session, email, password string) (*domain.Session, error)
	logoutFn       func(ctx context.Context, sess *domain.Session) error
}

func (s *stubAuthService) StartSession(ctx context.Context) (*domain.Session, error) {
	return s.startSessionFn(ctx)
}

func (s *stubAuthService) Login(ctx context.Context, sess *domain.Session, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, sess, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sess *domain.Session) error {
	return s.logoutFn(ctx, sess)
}

func newEchoContext(t *testing.T, method, target, body string, sess *domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(middleware.SessionKey, sess)
	}
	return c, rec
}

func TestStartSession_ReturnsTokenAndSession(t *testing.T) {
	svc := &stubAuthService{startSessionFn: func(context.Context) (*domain.Session, error) {
		return &domain.Session{ID: "sess_1"}, nil
	}}
	h := NewAuthHandler(svc, "secret")

	c, rec := newEchoContext(t, http.MethodPost, "/session", "", nil)
	if err := h.StartSession(c); err != nil {
		t.Fatalf("start session: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp startSessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.SessionToken == "" {
		t.Fatalf("expected a session token")
	}
	if resp.Session.ID != "sess_1" || resp.Session.Authenticated {
		t.Fatalf("unexpected session payload: %+v", resp.Session)
	}
}

func TestLogin_ReturnsAuthenticatedSession(t *testing.T) {
	svc := &stubAuthService{loginFn: func(_ context.Context, sess *domain.Session, email, password string) (*domain.Session, error) {
		if email != "ada@example.com" || password != "secret" {
			t.Fatalf("credentials not forwarded: %s/%s", email, password)
		}
		sess.User = &domain.User{ID: "usr_1", Email: email, Role: domain.RoleCustomer}
		sess.Token = "tok"
		return sess, nil
	}}
	h := NewAuthHandler(svc, "secret")

	body := `{"email":"ada@example.com","password":"secret"}`
	c, rec := newEchoContext(t, http.MethodPost, "/auth/login", body, &domain.Session{ID: "sess_1"})
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Authenticated || resp.User == nil || resp.User.ID != "usr_1" {
		t.Fatalf("unexpected session payload: %+v", resp)
	}
	if strings.Contains(rec.Body.String(), "tok") {
		t.Fatalf("upstream token must never reach the client: %s", rec.Body.String())
	}
}

func TestLogin_ValidationRejectsBadEmail(t *testing.T) {
	svc := &stubAuthService{loginFn: func(context.Context, *domain.Session, string, string) (*domain.Session, error) {
		t.Fatalf("service must not be called on validation failure")
		return nil, nil
	}}
	h := NewAuthHandler(svc, "secret")

	body := `{"email":"not-an-email","password":"secret"}`
	c, _ := newEchoContext(t, http.MethodPost, "/auth/login", body, &domain.Session{ID: "sess_1"})

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestLogin_ServiceErrorPropagates(t *testing.T) {
	svc := &stubAuthService{loginFn: func(context.Context, *domain.Session, string, string) (*domain.Session, error) {
		return nil, domain.ErrInvalidCredentials
	}}
	h := NewAuthHandler(svc, "secret")

	body := `{"email":"ada@example.com","password":"wrong"}`
	c, _ := newEchoContext(t, http.MethodPost, "/auth/login", body, &domain.Session{ID: "sess_1"})

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestLogin_MissingSessionIsUnauthorized(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, "secret")

	body := `{"email":"ada@example.com","password":"secret"}`
	c, _ := newEchoContext(t, http.MethodPost, "/auth/login", body, nil)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestLogout_NoContent(t *testing.T) {
	svc := &stubAuthService{logoutFn: func(context.Context, *domain.Session) error { return nil }}
	h := NewAuthHandler(svc, "secret")

	c, rec := newEchoContext(t, http.MethodPost, "/auth/logout", "", &domain.Session{ID: "sess_1"})
	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
