package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"okuyorum-admin/api"
	"okuyorum-admin/models"
)

// AuthService wraps /api/auth. Token issuance happens server-side; the
// client only forwards credentials.
type AuthService struct {
	client *api.Client
}

func NewAuthService(client *api.Client) *AuthService {
	return &AuthService{client: client}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*api.Response[models.LoginResult], error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, errors.New("username and password are required")
	}
	resp, err := api.Do[models.LoginResult](ctx, s.client, http.MethodPost, "/api/auth/login", loginRequest{
		Username: strings.TrimSpace(username),
		Password: password,
	})
	if err != nil {
		return nil, err
	}
	if resp.Data.Token == "" {
		return nil, errors.New("login response carried no token")
	}
	return resp, nil
}
