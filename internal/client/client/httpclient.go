package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
	"github.com/dmitrijs2005/classifieds/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"

	// RequestIDHeaderName tags every outbound request for log correlation.
	RequestIDHeaderName = "X-Request-ID"
)

// HTTPClient implements the backend API over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	limiter *rate.Limiter
	timeout time.Duration
	log     logging.Logger
}

// Option customizes an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client. Its cookie jar is
// kept if set, otherwise the client's own jar is installed.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc.Jar == nil {
			hc.Jar = c.http.Jar
		}
		c.http = hc
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithRateLimit paces outbound requests to rps per second with the given
// burst. A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *HTTPClient) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

// NewHTTPClient builds a client for the backend at baseURL. An empty baseURL
// produces relative request paths, which only works behind a transport that
// knows where to send them (tests, proxies).
func NewHTTPClient(baseURL string, tokens TokenSource, opts ...Option) (*HTTPClient, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}

	c := &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Jar: jar},
		tokens:  tokens,
		log:     logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalized backend origin.
func (c *HTTPClient) BaseURL() string { return c.baseURL }

// payload is an encoded request body together with its content type.
type payload struct {
	body        []byte
	contentType string
}

func jsonPayload(v any) (*payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return &payload{body: b, contentType: contentTypeJSON}, nil
}

func formPayload(values url.Values) *payload {
	return &payload{body: []byte(values.Encode()), contentType: contentTypeForm}
}

type formFile struct {
	field  string
	upload models.Upload
}

// multipartPayload encodes text fields (in the given order) followed by
// files. The content type of each file part is sniffed from its bytes.
func multipartPayload(fields [][2]string, files []formFile) (*payload, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, fmt.Errorf("encode field %s: %w", f[0], err)
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.field, f.upload.Filename))
		h.Set("Content-Type", http.DetectContentType(f.upload.Data))
		part, err := w.CreatePart(h)
		if err != nil {
			return nil, fmt.Errorf("encode file %s: %w", f.upload.Filename, err)
		}
		if _, err := part.Write(f.upload.Data); err != nil {
			return nil, fmt.Errorf("encode file %s: %w", f.upload.Filename, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	return &payload{body: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   body
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// requestOpts tweaks a single call.
type requestOpts struct {
	// anonymous skips the Authorization header.
	anonymous bool
}

// do sends one request and reads the whole response. Transport failures are
// reported as ErrUnavailable; HTTP error statuses are returned as a response
// for the caller to interpret.
func (c *HTTPClient) do(ctx context.Context, method, path string, p *payload, o requestOpts) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rd io.Reader
	if p != nil {
		rd = bytes.NewReader(p.body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(RequestIDHeaderName, requestID)
	if p != nil {
		req.Header.Set("Content-Type", p.contentType)
	}
	if !o.anonymous && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	log := c.log.With("method", method, "path", path, "request_id", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug(ctx, "request failed", logging.Err(err))
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, method, path, err)
	}
	defer resp.Body.Close()

	// A body that breaks off midway is treated like whatever arrived.
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Debug(ctx, "response body truncated", logging.Err(err))
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode)
	return &response{status: resp.StatusCode, body: parseBody(b)}, nil
}

// call performs a request and converts non-2xx statuses into *StatusError.
// overrides replace the extracted message for specific statuses.
func (c *HTTPClient) call(ctx context.Context, method, path string, p *payload, overrides map[int]string) (*response, error) {
	resp, err := c.do(ctx, method, path, p, requestOpts{})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, statusError(resp, overrides)
	}
	return resp, nil
}

func statusError(resp *response, overrides map[int]string) *StatusError {
	if msg, ok := overrides[resp.status]; ok {
		return &StatusError{Status: resp.status, Message: msg}
	}
	return &StatusError{Status: resp.status, Message: resp.body.message(resp.status)}
}

// decodeList decodes a JSON array body. Anything that is not an array of
// the expected shape yields an empty list.
func decodeList[T any](c *HTTPClient, ctx context.Context, resp *response) []T {
	var out []T
	if err := resp.body.decode(&out); err != nil {
		c.log.Debug(ctx, "unexpected list body, treating as empty", logging.Err(err))
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}

func escape(id models.ID) string { return url.PathEscape(id.String()) }
