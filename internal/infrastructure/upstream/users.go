package upstream

import (
	"context"
	"net/http"

	"github.com/threekst/storefront-gateway/internal/core/domain"
	"github.com/threekst/storefront-gateway/internal/core/ports"
)

// UserAdminClient implements ports.UserAdminAPI.
type UserAdminClient struct {
	c *Client
}

func NewUserAdminClient(c *Client) *UserAdminClient {
	return &UserAdminClient{c: c}
}

func (uc *UserAdminClient) Users(ctx context.Context, sess *domain.Session) ([]*domain.User, error) {
	var users []*domain.User
	if err := uc.c.do(ctx, sess, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (uc *UserAdminClient) CreateAdmin(ctx context.Context, sess *domain.Session, in ports.RegisterInput) (*domain.User, error) {
	var user domain.User
	body := map[string]string{
		"firstName": in.FirstName,
		"lastName":  in.LastName,
		"email":     in.Email,
		"password":  in.Password,
		"phone":     in.Phone,
	}
	if err := uc.c.do(ctx, sess, http.MethodPost, "/users/admins", nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (uc *UserAdminClient) DeleteAdmin(ctx context.Context, sess *domain.Session, id string) error {
	return uc.c.do(ctx, sess, http.MethodDelete, "/users/admins/"+id, nil, nil, nil)
}
