package client

import (
	"context"

	"github.com/dmitrijs2005/gophauth/internal/client/models"
)

// Client is the auth backend contract. Calls are made as-is: no local
// validation, retries or caching.
type Client interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (string, error)
	Me(ctx context.Context) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)

	// SetAccessToken sets the bearer token presented on later calls.
	// An empty token sends no Authorization header.
	SetAccessToken(token string)
}
