package api

import (
	"context"
	"net/http"

	"github.com/Shanmukha18/unibuy-client/internal/dto"
)

// Login authenticates against the backend. Token persistence is the
// session store's responsibility, not the transport's.
func (c *Client) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var resp dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. It does not authenticate.
func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) error {
	return c.do(ctx, http.MethodPost, "/auth/register", nil, req, nil)
}
