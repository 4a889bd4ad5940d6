package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// AuthService implements the session lifecycle over the upstream auth API.
// Identity writes go through the session store's atomic-replace operations so
// a user is never stored without its token.
type AuthService struct {
	upstream ports.AuthAPI
	sessions ports.SessionStore
	cartSync ports.CartSync
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewAuthService(
	upstream ports.AuthAPI,
	sessions ports.SessionStore,
	cartSync ports.CartSync,
	notifier ports.Notifier,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		upstream: upstream,
		sessions: sessions,
		cartSync: cartSync,
		notifier: notifier,
		log:      log,
	}
}

// StartSession creates an anonymous session so guests have a home for wizard
// state before (or without) ever authenticating.
func (s *AuthService) StartSession(ctx context.Context) (*domain.Session, error) {
	sess, err := s.sessions.Create(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Debug().Str("session_id", sess.ID).Msg("session started")
	return sess, nil
}

// Login authenticates against the upstream and installs the identity. A
// generic bad-credentials failure is normalized to a fixed message; any other
// upstream message passes through verbatim.
func (s *AuthService) Login(ctx context.Context, sess *domain.Session, email, password string) (*domain.Session, error) {
	res, err := s.upstream.Login(ctx, email, password)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("login failed")
		if isBadCredentials(err) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.sessions.SaveAuth(ctx, sess.ID, res.User, res.Token, res.RefreshToken); err != nil {
		return nil, err
	}
	sess.User = res.User
	sess.Token = res.Token
	sess.RefreshToken = res.RefreshToken

	s.log.Info().Str("session_id", sess.ID).Str("user_id", res.User.ID).Msg("login")
	s.cartSync.RefreshFor(ctx, sess)
	return sess, nil
}

// Register creates an account upstream and stores the session identically to
// login.
func (s *AuthService) Register(ctx context.Context, sess *domain.Session, in ports.RegisterInput) (*domain.Session, error) {
	res, err := s.upstream.Register(ctx, in)
	if err != nil {
		s.log.Warn().Err(err).Str("email", in.Email).Msg("registration failed")
		return nil, err
	}

	if err := s.sessions.SaveAuth(ctx, sess.ID, res.User, res.Token, res.RefreshToken); err != nil {
		return nil, err
	}
	sess.User = res.User
	sess.Token = res.Token
	sess.RefreshToken = res.RefreshToken

	s.log.Info().Str("session_id", sess.ID).Str("user_id", res.User.ID).Msg("registered")
	s.cartSync.RefreshFor(ctx, sess)
	return sess, nil
}

// Logout calls the upstream best-effort and unconditionally clears the local
// identity. Calling it on an already-anonymous session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sess *domain.Session) error {
	if sess.Token != "" {
		if err := s.upstream.Logout(ctx, sess); err != nil {
			s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("upstream logout failed")
		}
	}

	if err := s.sessions.ClearAuth(ctx, sess.ID); err != nil {
		return err
	}
	sess.User = nil
	sess.Token = ""
	sess.RefreshToken = ""

	s.cartSync.ClearFor(ctx, sess.ID)
	s.log.Info().Str("session_id", sess.ID).Msg("logout")
	return nil
}

// Revalidate confirms the cached identity against the upstream. Success
// refreshes the cached user; any failure clears user and token together.
func (s *AuthService) Revalidate(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	if !sess.Authenticated() {
		if sess.User != nil || sess.Token != "" {
			// Half-populated identity violates the pairing invariant.
			_ = s.sessions.ClearAuth(ctx, sess.ID)
			sess.User = nil
			sess.Token = ""
			sess.RefreshToken = ""
		}
		return sess, nil
	}

	user, err := s.upstream.CurrentUser(ctx, sess)
	if err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("revalidation failed, clearing session")
		if clearErr := s.sessions.ClearAuth(ctx, sess.ID); clearErr != nil {
			return nil, clearErr
		}
		sess.User = nil
		sess.Token = ""
		sess.RefreshToken = ""
		s.cartSync.ClearFor(ctx, sess.ID)
		return sess, nil
	}

	if err := s.sessions.SaveUser(ctx, sess.ID, user); err != nil {
		return nil, err
	}
	sess.User = user
	return sess, nil
}

// ForgotPassword asks the upstream to send a reset email.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.upstream.ForgotPassword(ctx, email)
}

// ResetPassword completes a reset flow with the emailed token.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.upstream.ResetPassword(ctx, token, newPassword)
}

// UpdateProfile updates mutable profile fields and refreshes the cached user.
func (s *AuthService) UpdateProfile(ctx context.Context, sess *domain.Session, in ports.ProfileUpdate) (*domain.Session, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrAuthRequired
	}
	user, err := s.upstream.UpdateProfile(ctx, sess, sess.User.ID, in)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.SaveUser(ctx, sess.ID, user); err != nil {
		return nil, err
	}
	sess.User = user
	s.notify(sess.ID, domain.NotifySuccess, "Profile", "Profile updated")
	return sess, nil
}

// ChangePassword is a thin pass-through to the upstream.
func (s *AuthService) ChangePassword(ctx context.Context, sess *domain.Session, oldPassword, newPassword string) error {
	if !sess.Authenticated() {
		return domain.ErrAuthRequired
	}
	return s.upstream.ChangePassword(ctx, sess, sess.User.ID, oldPassword, newPassword)
}

func (s *AuthService) notify(sid string, level domain.NotificationLevel, title, msg string) {
	s.notifier.Notify(domain.Notification{
		SessionID: sid,
		Level:     level,
		Title:     title,
		Message:   msg,
		At:        time.Now().UTC(),
	})
}

// isBadCredentials detects the upstream's generic bad-credentials condition:
// a 401, an explicit "bad credentials" message, or no message at all.
func isBadCredentials(err error) bool {
	ue, ok := err.(*domain.UpstreamError)
	if !ok {
		return false
	}
	if ue.StatusCode == 401 || ue.Message == "" {
		return true
	}
	return strings.Contains(strings.ToLower(ue.Message), "bad credentials")
}
