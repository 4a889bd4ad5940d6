package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

type memSessionStore struct {
	sessions       map[string]*domain.Session
	saveTokenCalls int
	clearAuthCalls int
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*domain.Session{}}
}

func (m *memSessionStore) Create(context.Context) (*domain.Session, error) {
	sess := &domain.Session{ID: "sess_1"}
	m.sessions[sess.ID] = sess
	return sess, nil
}

func (m *memSessionStore) Get(_ context.Context, sid string) (*domain.Session, error) {
	sess, ok := m.sessions[sid]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (m *memSessionStore) SaveAuth(_ context.Context, sid string, user *domain.User, token, refreshToken string) error {
	m.sessions[sid] = &domain.Session{ID: sid, User: user, Token: token, RefreshToken: refreshToken}
	return nil
}

func (m *memSessionStore) SaveUser(_ context.Context, sid string, user *domain.User) error {
	if sess, ok := m.sessions[sid]; ok {
		sess.User = user
	}
	return nil
}

func (m *memSessionStore) SaveToken(_ context.Context, sid, token string) error {
	m.saveTokenCalls++
	if sess, ok := m.sessions[sid]; ok {
		sess.Token = token
	}
	return nil
}

func (m *memSessionStore) ClearAuth(_ context.Context, sid string) error {
	m.clearAuthCalls++
	if sess, ok := m.sessions[sid]; ok {
		sess.User = nil
		sess.Token = ""
		sess.RefreshToken = ""
	}
	return nil
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *memSessionStore, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	store := newMemSessionStore()
	client := NewClient(srv.URL, 5*time.Second, store, zerolog.Nop())
	return client, store, srv.Close
}

func authedTestSession() *domain.Session {
	return &domain.Session{
		ID:           "sess_1",
		User:         &domain.User{ID: "usr_1", Email: "ada@example.com"},
		Token:        "stale-token",
		RefreshToken: "refresh-1",
	}
}

func TestDo_AttachesBearerAndUnwrapsEnvelope(t *testing.T) {
	var gotAuth string
	client, _, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":   true,
			"data":      map[string]any{"id": "usr_1", "email": "ada@example.com"},
			"message":   "ok",
			"timestamp": "2024-06-01T10:00:00Z",
		})
	}))
	defer done()

	sess := authedTestSession()
	var user domain.User
	if err := client.do(context.Background(), sess, http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		t.Fatalf("do: %v", err)
	}

	if gotAuth != "Bearer stale-token" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if user.ID != "usr_1" {
		t.Fatalf("envelope data not unwrapped: %+v", user)
	}
}

func TestDo_BarePayloadDecodesDirectly(t *testing.T) {
	client, _, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "usr_1", "email": "ada@example.com"})
	}))
	defer done()

	var user domain.User
	if err := client.do(context.Background(), nil, http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		t.Fatalf("do: %v", err)
	}
	if user.ID != "usr_1" {
		t.Fatalf("bare payload not decoded: %+v", user)
	}
}

func TestDo_EnvelopeFailureBecomesUpstreamError(t *testing.T) {
	client, _, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"message": "Product out of stock",
		})
	}))
	defer done()

	err := client.do(context.Background(), nil, http.MethodPost, "/cart/add", nil, map[string]string{}, nil)
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if ue.Message != "Product out of stock" {
		t.Fatalf("expected upstream message, got %q", ue.Message)
	}
}

func TestDo_401RefreshesOnceAndRetries(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			if r.Header.Get("Authorization") != "Bearer stale-token" {
				t.Errorf("first attempt should carry the stale token")
			}
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.Header.Get("Authorization") != "Bearer fresh-token" {
			t.Errorf("retry should carry the refreshed token, got %q", r.Header.Get("Authorization"))
		}
		// The original body must be resent on the retry.
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["serviceId"] != "svc_1" {
			t.Errorf("retry lost the request body: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": map[string]string{"id": "bk_1"}})
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["refreshToken"] != "refresh-1" {
			t.Errorf("refresh must send the stored refresh token, got %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": "fresh-token"})
	})

	client, store, done := newTestClient(t, mux)
	defer done()

	sess := authedTestSession()
	store.sessions[sess.ID] = sess

	var booking struct {
		ID string `json:"id"`
	}
	err := client.do(context.Background(), sess, http.MethodPost, "/bookings", nil, map[string]string{"serviceId": "svc_1"}, &booking)
	if err != nil {
		t.Fatalf("do: %v", err)
	}

	if booking.ID != "bk_1" {
		t.Fatalf("expected retried response, got %+v", booking)
	}
	if sess.Token != "fresh-token" {
		t.Fatalf("session token not swapped: %q", sess.Token)
	}
	if store.saveTokenCalls != 1 {
		t.Fatalf("refreshed token must be persisted once, got %d", store.saveTokenCalls)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected exactly one retry, got %d calls", got)
	}
}

func TestDo_Second401IsFinal(t *testing.T) {
	var calls int32
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": "fresh-token"})
	})

	client, _, done := newTestClient(t, mux)
	defer done()

	sess := authedTestSession()
	err := client.do(context.Background(), sess, http.MethodGet, "/cart", nil, nil, nil)

	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected a final 401 UpstreamError, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected exactly two attempts, got %d", got)
	}
}

func TestDo_RefreshFailureExpiresSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	client, store, done := newTestClient(t, mux)
	defer done()

	sess := authedTestSession()
	store.sessions[sess.ID] = sess

	err := client.do(context.Background(), sess, http.MethodGet, "/cart", nil, nil, nil)
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
	if sess.User != nil || sess.Token != "" || sess.RefreshToken != "" {
		t.Fatalf("expired session not cleared: %+v", sess)
	}
	if store.clearAuthCalls != 1 {
		t.Fatalf("expected one ClearAuth, got %d", store.clearAuthCalls)
	}
}

func TestDo_NoRefreshWithoutRefreshToken(t *testing.T) {
	var calls int32
	client, _, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer done()

	sess := &domain.Session{ID: "sess_1", User: &domain.User{ID: "usr_1"}, Token: "tok"}
	err := client.do(context.Background(), sess, http.MethodGet, "/cart", nil, nil, nil)

	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected a 401 UpstreamError, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("no refresh token means no retry, got %d calls", got)
	}
}

func TestCurrentUser_EmptyUserIsUnauthorized(t *testing.T) {
	client, _, done := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{})
	}))
	defer done()

	auth := NewAuthClient(client)
	_, err := auth.CurrentUser(context.Background(), authedTestSession())
	if !domain.IsUpstreamStatus(err, http.StatusUnauthorized) {
		t.Fatalf("expected 401 UpstreamError, got %v", err)
	}
}
