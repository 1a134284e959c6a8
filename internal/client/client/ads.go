package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

// MsgAccountRestricted replaces the backend text of a 403 on ad endpoints.
const MsgAccountRestricted = "account is blocked or under review"

var adsOverrides = map[int]string{
	http.StatusUnauthorized: "not authenticated, please log in again",
	http.StatusForbidden:    MsgAccountRestricted,
}

func uploads(field string, files []models.Upload) []formFile {
	out := make([]formFile, 0, len(files))
	for _, f := range files {
		out = append(out, formFile{field: field, upload: f})
	}
	return out
}

// CreateAd posts a new ad with its images as one multipart request.
func (c *HTTPClient) CreateAd(ctx context.Context, ad models.NewAd) (*models.CreatedAd, error) {
	p, err := multipartPayload([][2]string{
		{"title", ad.Title},
		{"description", ad.Description},
		{"user_id", ad.UserID.String()},
	}, uploads("images", ad.Images))
	if err != nil {
		return nil, err
	}

	resp, err := c.call(ctx, http.MethodPost, "/api/ads/create", p, adsOverrides)
	if err != nil {
		return nil, err
	}

	var created models.CreatedAd
	if err := resp.body.decode(&created); err != nil {
		return nil, fmt.Errorf("decode created ad: %w", err)
	}
	return &created, nil
}

func (c *HTTPClient) ListUserAds(ctx context.Context, userID models.ID) ([]models.Ad, error) {
	resp, err := c.call(ctx, http.MethodGet, "/api/ads/user/"+escape(userID), nil, adsOverrides)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Ad](c, ctx, resp), nil
}

// EditAd replaces title and description and appends NewImages.
func (c *HTTPClient) EditAd(ctx context.Context, adID models.ID, edit models.AdEdit) error {
	p, err := multipartPayload([][2]string{
		{"title", edit.Title},
		{"description", edit.Description},
	}, uploads("new_images", edit.NewImages))
	if err != nil {
		return err
	}
	_, err = c.call(ctx, http.MethodPut, "/api/ads/edit/"+escape(adID), p, adsOverrides)
	return err
}

func (c *HTTPClient) DeleteAd(ctx context.Context, adID models.ID) error {
	_, err := c.call(ctx, http.MethodDelete, "/api/ads/delete/"+escape(adID), nil, adsOverrides)
	return err
}

func (c *HTTPClient) DeleteImage(ctx context.Context, imageID models.ID) error {
	_, err := c.call(ctx, http.MethodDelete, "/api/ads/delete-image/"+escape(imageID), nil, adsOverrides)
	return err
}

func (c *HTTPClient) DeleteAllImages(ctx context.Context, adID models.ID) error {
	_, err := c.call(ctx, http.MethodDelete, "/api/ads/delete-all-images/"+escape(adID), nil, adsOverrides)
	return err
}
