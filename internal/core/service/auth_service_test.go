package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

func newAuthFixture(api *fakeAuthAPI) (*AuthService, *fakeSessionStore, *fakeCartSync, *fakeNotifier) {
	sessions := newFakeSessionStore()
	cartSync := &fakeCartSync{}
	notifier := &fakeNotifier{}
	svc := NewAuthService(api, sessions, cartSync, notifier, zerolog.Nop())
	return svc, sessions, cartSync, notifier
}

func testUser() *domain.User {
	return &domain.User{ID: "usr_1", Email: "ada@example.com", FirstName: "Ada", LastName: "Obi", Role: domain.RoleCustomer}
}

func TestLogin_InstallsIdentityAtomically(t *testing.T) {
	api := &fakeAuthAPI{loginRes: &ports.AuthResult{Token: "tok", RefreshToken: "ref", User: testUser()}}
	svc, sessions, cartSync, _ := newAuthFixture(api)

	sess := &domain.Session{ID: "sess_1"}
	got, err := svc.Login(context.Background(), sess, "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if !got.Authenticated() {
		t.Fatalf("session should be authenticated after login")
	}
	if sessions.saveAuthCalls != 1 {
		t.Fatalf("expected one atomic SaveAuth, got %d", sessions.saveAuthCalls)
	}
	if len(cartSync.refreshed) != 1 || cartSync.refreshed[0] != "sess_1" {
		t.Fatalf("login should trigger a cart refresh, got %v", cartSync.refreshed)
	}
}

func TestLogin_NormalizesBadCredentials(t *testing.T) {
	cases := []error{
		&domain.UpstreamError{StatusCode: 401, Message: "Unauthorized"},
		&domain.UpstreamError{StatusCode: 400, Message: ""},
		&domain.UpstreamError{StatusCode: 400, Message: "Bad credentials supplied"},
	}
	for _, cause := range cases {
		api := &fakeAuthAPI{loginErr: cause}
		svc, sessions, _, _ := newAuthFixture(api)

		_, err := svc.Login(context.Background(), &domain.Session{ID: "sess_1"}, "ada@example.com", "wrong")
		if !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("cause %v: expected ErrInvalidCredentials, got %v", cause, err)
		}
		if sessions.saveAuthCalls != 0 {
			t.Fatalf("failed login must not write the session")
		}
	}
}

func TestLogin_OtherUpstreamMessagesPassThrough(t *testing.T) {
	cause := &domain.UpstreamError{StatusCode: 423, Message: "Account locked"}
	api := &fakeAuthAPI{loginErr: cause}
	svc, _, _, _ := newAuthFixture(api)

	_, err := svc.Login(context.Background(), &domain.Session{ID: "sess_1"}, "ada@example.com", "pw")
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("distinct upstream failure should not be normalized")
	}
	var ue *domain.UpstreamError
	if !errors.As(err, &ue) || ue.Message != "Account locked" {
		t.Fatalf("expected upstream message to pass through, got %v", err)
	}
}

func TestLogout_ClearsEvenWhenUpstreamFails(t *testing.T) {
	api := &fakeAuthAPI{logoutErr: errors.New("upstream down")}
	svc, sessions, cartSync, _ := newAuthFixture(api)

	sess := &domain.Session{ID: "sess_1", User: testUser(), Token: "tok", RefreshToken: "ref"}
	if err := svc.Logout(context.Background(), sess); err != nil {
		t.Fatalf("logout must succeed despite upstream failure: %v", err)
	}

	if sess.User != nil || sess.Token != "" || sess.RefreshToken != "" {
		t.Fatalf("identity not cleared: %+v", sess)
	}
	if sessions.clearAuthCalls != 1 {
		t.Fatalf("expected one ClearAuth, got %d", sessions.clearAuthCalls)
	}
	if len(cartSync.cleared) != 1 {
		t.Fatalf("logout should clear the cart cache")
	}
}

func TestLogout_AnonymousSessionIsNoOpUpstream(t *testing.T) {
	api := &fakeAuthAPI{}
	svc, _, _, _ := newAuthFixture(api)

	sess := &domain.Session{ID: "sess_1"}
	if err := svc.Logout(context.Background(), sess); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if api.logoutCalls != 0 {
		t.Fatalf("anonymous logout must not call the upstream")
	}
}

func TestRevalidate_RefreshesUser(t *testing.T) {
	updated := testUser()
	updated.FirstName = "Adaeze"
	api := &fakeAuthAPI{currentUser: updated}
	svc, sessions, _, _ := newAuthFixture(api)

	sess := &domain.Session{ID: "sess_1", User: testUser(), Token: "tok"}
	got, err := svc.Revalidate(context.Background(), sess)
	if err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if got.User.FirstName != "Adaeze" {
		t.Fatalf("cached user not refreshed: %+v", got.User)
	}
	if sessions.saveUserCalls != 1 {
		t.Fatalf("expected one SaveUser, got %d", sessions.saveUserCalls)
	}
}

func TestRevalidate_FailureClearsUserAndTokenTogether(t *testing.T) {
	api := &fakeAuthAPI{currentErr: &domain.UpstreamError{StatusCode: 401}}
	svc, sessions, cartSync, _ := newAuthFixture(api)

	sess := &domain.Session{ID: "sess_1", User: testUser(), Token: "tok", RefreshToken: "ref"}
	got, err := svc.Revalidate(context.Background(), sess)
	if err != nil {
		t.Fatalf("revalidate failure should not error, got %v", err)
	}

	if got.User != nil || got.Token != "" || got.RefreshToken != "" {
		t.Fatalf("user and token must be cleared together: %+v", got)
	}
	if sessions.clearAuthCalls != 1 {
		t.Fatalf("expected one ClearAuth, got %d", sessions.clearAuthCalls)
	}
	if len(cartSync.cleared) != 1 {
		t.Fatalf("expired session should clear the cart cache")
	}
}

func TestRevalidate_RepairsHalfPopulatedIdentity(t *testing.T) {
	api := &fakeAuthAPI{}
	svc, sessions, _, _ := newAuthFixture(api)

	// A user without a token violates the pairing invariant.
	sess := &domain.Session{ID: "sess_1", User: testUser()}
	got, err := svc.Revalidate(context.Background(), sess)
	if err != nil {
		t.Fatalf("revalidate: %v", err)
	}
	if got.User != nil {
		t.Fatalf("dangling user should be dropped")
	}
	if sessions.clearAuthCalls != 1 {
		t.Fatalf("expected one ClearAuth, got %d", sessions.clearAuthCalls)
	}
}

func TestUpdateProfile_RequiresAuth(t *testing.T) {
	svc, _, _, _ := newAuthFixture(&fakeAuthAPI{})
	_, err := svc.UpdateProfile(context.Background(), &domain.Session{ID: "sess_1"}, ports.ProfileUpdate{FirstName: "Ada"})
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}
