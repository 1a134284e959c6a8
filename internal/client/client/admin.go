package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

const (
	MsgNotAuthenticated = "not authenticated"
	MsgAdminRequired    = "not authorized, admin required"
)

// adminOverrides always win over whatever the backend says for 401/403.
var adminOverrides = map[int]string{
	http.StatusUnauthorized: MsgNotAuthenticated,
	http.StatusForbidden:    MsgAdminRequired,
}

func userPath(id models.ID, suffix string) string {
	return "/api/admin/users/" + escape(id) + suffix
}

func adPath(id models.ID, suffix string) string {
	return "/api/admin/ads/" + escape(id) + suffix
}

func (c *HTTPClient) adminJSON(ctx context.Context, method, path string, v any) error {
	var p *payload
	if v != nil {
		var err error
		if p, err = jsonPayload(v); err != nil {
			return err
		}
	}
	_, err := c.call(ctx, method, path, p, adminOverrides)
	return err
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	resp, err := c.call(ctx, http.MethodGet, "/api/admin/users", nil, adminOverrides)
	if err != nil {
		return nil, err
	}
	return decodeList[models.UserProfile](c, ctx, resp), nil
}

// DeleteUser deletes an account. The admin password is only sent when set.
func (c *HTTPClient) DeleteUser(ctx context.Context, userID models.ID, req models.DeleteUserRequest) error {
	var body any
	if req.AdminPassword != "" {
		body = req
	}
	return c.adminJSON(ctx, http.MethodDelete, userPath(userID, ""), body)
}

func (c *HTTPClient) BlockUser(ctx context.Context, userID models.ID) error {
	return c.adminJSON(ctx, http.MethodPost, userPath(userID, "/block"), nil)
}

func (c *HTTPClient) UnblockUser(ctx context.Context, userID models.ID) error {
	return c.adminJSON(ctx, http.MethodPost, userPath(userID, "/unblock"), nil)
}

func (c *HTTPClient) SetUserPassword(ctx context.Context, userID models.ID, req models.SetPasswordRequest) error {
	return c.adminJSON(ctx, http.MethodPost, userPath(userID, "/set-password"), req)
}

func (c *HTTPClient) CreateAdmin(ctx context.Context, req models.CreateAdminRequest) error {
	return c.adminJSON(ctx, http.MethodPost, "/api/admin/users/create-admin", req)
}

func (c *HTTPClient) PromoteAdmin(ctx context.Context, req models.PromoteAdminRequest) error {
	return c.adminJSON(ctx, http.MethodPost, "/api/admin/users/promote-admin", req)
}

func (c *HTTPClient) ListAds(ctx context.Context) ([]models.Ad, error) {
	resp, err := c.call(ctx, http.MethodGet, "/api/admin/ads", nil, adminOverrides)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Ad](c, ctx, resp), nil
}

func (c *HTTPClient) AdminDeleteAd(ctx context.Context, adID models.ID) error {
	return c.adminJSON(ctx, http.MethodDelete, adPath(adID, ""), nil)
}

func (c *HTTPClient) BlockAd(ctx context.Context, adID models.ID) error {
	return c.adminJSON(ctx, http.MethodPost, adPath(adID, "/block"), nil)
}

func (c *HTTPClient) UnblockAd(ctx context.Context, adID models.ID) error {
	return c.adminJSON(ctx, http.MethodPost, adPath(adID, "/unblock"), nil)
}

func (c *HTTPClient) DeleteAdImage(ctx context.Context, adID, imageID models.ID) error {
	return c.adminJSON(ctx, http.MethodDelete, adPath(adID, "/images/"+escape(imageID)), nil)
}
