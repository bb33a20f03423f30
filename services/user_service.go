package services

import (
	"context"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
)

// UserService wraps /api/users. The admin views only read users.
type UserService struct {
	client *api.Client
}

func NewUserService(client *api.Client) *UserService {
	return &UserService{client: client}
}

// Me returns the account behind the current bearer token. Admin checks go
// through session.Authorizer, which calls this and never trusts the locally
// decoded token.
func (s *UserService) Me(ctx context.Context) (*api.Response[models.User], error) {
	return api.Get[models.User](ctx, s.client, "/api/users/me")
}

func (s *UserService) GetAllUsers(ctx context.Context) (*api.Response[[]models.User], error) {
	return api.Get[[]models.User](ctx, s.client, "/api/users")
}
