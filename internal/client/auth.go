package client

import (
	"context"
	"net/http"

	"github.com/storefront/storefront-admin/internal/domain"
	domainerrors "github.com/storefront/storefront-admin/internal/errors"
)

// MissingCredentialsMessage is returned when a 2xx auth response lacks the user or the token.
const MissingCredentialsMessage = "Invalid API response: Missing user or token"

// Login exchanges credentials for a user and an access token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Register creates an account and returns its user and access token.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	return c.authenticate(ctx, "/auth/register", reg)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*domain.AuthResult, error) {
	var result domain.AuthResult
	err := c.do(ctx, request{
		method:    http.MethodPost,
		path:      path,
		body:      body,
		anonymous: true,
	}, &result)
	if err != nil {
		return nil, err
	}

	if result.User == nil || result.AccessToken == "" {
		return nil, domainerrors.InvalidResponse(MissingCredentialsMessage)
	}
	return &result, nil
}

// ListUsers returns every user. Admin only on the server side.
func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/all"}, &users); err != nil {
		return nil, err
	}
	return users, nil
}
