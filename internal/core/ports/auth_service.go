package ports

import (
	"context"

	"github.com/threekst/storefront-gateway/internal/core/domain"
)

// AuthService owns the session lifecycle: login, registration, logout,
// password flows and background revalidation.
type AuthService interface {
	StartSession(ctx context.Context) (*domain.Session, error)
	Login(ctx context.Context, sess *domain.Session, email, password string) (*domain.Session, error)
	Register(ctx context.Context, sess *domain.Session, in RegisterInput) (*domain.Session, error)
	Logout(ctx context.Context, sess *domain.Session) error
	// Revalidate re-checks the cached identity against the upstream current
	// user endpoint. On any failure, user and token are cleared together.
	Revalidate(ctx context.Context, sess *domain.Session) (*domain.Session, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	UpdateProfile(ctx context.Context, sess *domain.Session, in ProfileUpdate) (*domain.Session, error)
	ChangePassword(ctx context.Context, sess *domain.Session, oldPassword, newPassword string) error
}

// CartSync is the reactive hook the auth service fires on session
// transitions: refresh when a session becomes authenticated, clear when it
// stops being authenticated. Both calls are best-effort.
type CartSync interface {
	RefreshFor(ctx context.Context, sess *domain.Session)
	ClearFor(ctx context.Context, sid string)
}
