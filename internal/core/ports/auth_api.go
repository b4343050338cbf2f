package ports

import (
	"context"

	"github.com/taskdesk/client-go/internal/core/domain"
)

// LoginData is the credential pair submitted to the login endpoint.
type LoginData struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the login endpoint's success payload: a token pair plus
// the authenticated user. The refresh token is persisted but never consumed
// by this layer.
type AuthResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *domain.User `json:"user"`
}

// AuthAPI is the users/auth resource family of the backend.
//
// Login is the only operation that surfaces the server's structured
// validation body on failure (*rest.CredentialError); every other
// operation fails with a generic *rest.APIError carrying the status code.
type AuthAPI interface {
	Login(ctx context.Context, data LoginData) (*AuthResponse, error)
	GetCurrentUser(ctx context.Context) (*domain.User, error)
	GetUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, data domain.CreateUserData) (*domain.User, error)
	UpdateUser(ctx context.Context, userID int, data domain.UpdateUserData) (*domain.User, error)
	DeleteUser(ctx context.Context, userID int) error
}
