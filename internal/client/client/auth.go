package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

func (c *HTTPClient) postJSON(ctx context.Context, path string, v any, overrides map[int]string) (*response, error) {
	p, err := jsonPayload(v)
	if err != nil {
		return nil, err
	}
	return c.call(ctx, http.MethodPost, path, p, overrides)
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) error {
	_, err := c.postJSON(ctx, "/api/auth/register", req, nil)
	return err
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, req models.ForgotPasswordRequest) error {
	_, err := c.postJSON(ctx, "/api/auth/forgot-password", req, nil)
	return err
}

func (c *HTTPClient) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) error {
	_, err := c.postJSON(ctx, "/api/auth/reset-password", req, nil)
	return err
}

// ChangePassword changes the password of the user the bearer token belongs to.
func (c *HTTPClient) ChangePassword(ctx context.Context, req models.ChangePasswordRequest) error {
	_, err := c.postJSON(ctx, "/api/auth/change-password", req, map[int]string{
		http.StatusUnauthorized: "not authenticated, please log in again",
	})
	return err
}
