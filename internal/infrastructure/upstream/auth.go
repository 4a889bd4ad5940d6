package upstream

import (
	"context"
	"net/http"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// AuthClient implements ports.AuthAPI.
type AuthClient struct {
	c *Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{c: c}
}

type authPayload struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user"`
}

func (a *AuthClient) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	var out authPayload
	body := map[string]string{"email": email, "password": password}
	if err := a.c.do(ctx, nil, http.MethodPost, "/users/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: out.Token, RefreshToken: out.RefreshToken, User: out.User}, nil
}

func (a *AuthClient) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	var out authPayload
	body := map[string]string{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"email":     in.Email,
		"password":  in.Password,
	}
	if in.Phone != "" {
		body["phone"] = in.Phone
	}
	if err := a.c.do(ctx, nil, http.MethodPost, "/auth/register", nil, body, &out); err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: out.Token, RefreshToken: out.RefreshToken, User: out.User}, nil
}

func (a *AuthClient) Logout(ctx context.Context, sess *domain.Session) error {
	return a.c.do(ctx, sess, http.MethodPost, "/auth/logout", nil, nil, nil)
}

// CurrentUser hits the revalidation endpoint. The salon API returns the user
// object directly here, not wrapped in an envelope.
func (a *AuthClient) CurrentUser(ctx context.Context, sess *domain.Session) (*domain.User, error) {
	var user domain.User
	if err := a.c.do(ctx, sess, http.MethodGet, "/users/me", nil, nil, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, &domain.UpstreamError{StatusCode: http.StatusUnauthorized, Message: "invalid session"}
	}
	return &user, nil
}

func (a *AuthClient) ForgotPassword(ctx context.Context, email string) error {
	return a.c.do(ctx, nil, http.MethodPost, "/auth/forgot-password", nil, map[string]string{"email": email}, nil)
}

func (a *AuthClient) ResetPassword(ctx context.Context, token, newPassword string) error {
	body := map[string]string{"token": token, "newPassword": newPassword}
	return a.c.do(ctx, nil, http.MethodPost, "/auth/reset-password", nil, body, nil)
}

func (a *AuthClient) UpdateProfile(ctx context.Context, sess *domain.Session, userID string, in ports.ProfileUpdate) (*domain.User, error) {
	var user domain.User
	body := map[string]string{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"phone":     in.Phone,
	}
	if err := a.c.do(ctx, sess, http.MethodPut, "/users/"+userID, nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AuthClient) ChangePassword(ctx context.Context, sess *domain.Session, userID, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return a.c.do(ctx, sess, http.MethodPost, "/users/"+userID+"/change-password", nil, body, nil)
}
