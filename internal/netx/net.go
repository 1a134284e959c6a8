// Package netx holds small HTTP helpers that do not belong to the backend
// API client: resolving image locations and downloading their bytes.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ResolveURL turns a backend image reference into a fetchable URL.
// Absolute http(s) URLs are returned unchanged; relative paths are joined to
// base (with exactly one slash between them). An empty reference yields "".
func ResolveURL(base, pathOrURL string) string {
	if pathOrURL == "" {
		return ""
	}
	lower := strings.ToLower(pathOrURL)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return pathOrURL
	}
	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return strings.TrimRight(base, "/") + pathOrURL
}

// Download fetches url with GET and returns the body. Any non-200 status is
// an error that includes the start of the response body.
func Download(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
	return io.ReadAll(resp.Body)
}
