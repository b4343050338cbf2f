package rest

import (
	"context"
	"fmt"

	"github.com/taskdesk/client-go/internal/core/domain"
	"github.com/taskdesk/client-go/internal/core/ports"
)

// AuthAPI implements ports.AuthAPI against the backend's users/auth endpoints.
type AuthAPI struct {
	client *Client
}

var _ ports.AuthAPI = (*AuthAPI)(nil)

func NewAuthAPI(client *Client) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login authenticates with the credential pair. On non-2xx the server's
// structured validation body is returned as *CredentialError so callers
// can show the most specific field-level message.
func (a *AuthAPI) Login(ctx context.Context, data ports.LoginData) (*ports.AuthResponse, error) {
	if err := a.client.checkPayload(data); err != nil {
		return nil, err
	}
	var resp ports.AuthResponse
	if err := a.client.doLogin(ctx, "/api/auth/login/", data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) GetCurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := a.client.get(ctx, "/api/auth/me/", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AuthAPI) GetUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := a.client.get(ctx, "/api/auth/users/", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (a *AuthAPI) CreateUser(ctx context.Context, data domain.CreateUserData) (*domain.User, error) {
	if err := a.client.checkPayload(data); err != nil {
		return nil, err
	}
	var user domain.User
	if err := a.client.post(ctx, "/api/auth/users/create/", data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (a *AuthAPI) UpdateUser(ctx context.Context, userID int, data domain.UpdateUserData) (*domain.User, error) {
	if err := a.client.checkPayload(data); err != nil {
		return nil, err
	}
	var user domain.User
	if err := a.client.put(ctx, fmt.Sprintf("/api/auth/users/update/%d/", userID), data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser succeeds with no value; the server answers 204 with an empty body.
func (a *AuthAPI) DeleteUser(ctx context.Context, userID int) error {
	return a.client.delete(ctx, fmt.Sprintf("/api/auth/users/delete/%d/", userID), nil)
}
