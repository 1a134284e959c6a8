package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/classifieds/internal/netx"
)

// ImageURL resolves an image reference against the backend origin.
func (c *HTTPClient) ImageURL(pathOrURL string) string {
	return netx.ResolveURL(c.baseURL, pathOrURL)
}

// FetchImage downloads an image through the client's transport, so cookies
// and test round trippers apply.
func (c *HTTPClient) FetchImage(ctx context.Context, pathOrURL string) ([]byte, error) {
	u := c.ImageURL(pathOrURL)
	if u == "" {
		return nil, errors.New("empty image reference")
	}
	b, err := netx.Download(ctx, c.http, u)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	return b, nil
}
