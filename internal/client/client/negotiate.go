package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/classifieds/internal/client/models"
)

const loginPath = "/api/auth/login"

// loginAttempt builds one request shape for the login endpoint.
type loginAttempt struct {
	name  string
	build func(email, password string) (*payload, error)
}

// loginAttempts is the ordered list of payload shapes tried by Login.
var loginAttempts = []loginAttempt{
	{
		name: "json-email",
		build: func(email, password string) (*payload, error) {
			return jsonPayload(map[string]string{"email": email, "password": password})
		},
	},
	{
		name: "json-username",
		build: func(email, password string) (*payload, error) {
			return jsonPayload(map[string]string{"username": email, "password": password})
		},
	},
	{
		name: "form-username",
		build: func(email, password string) (*payload, error) {
			return formPayload(url.Values{"username": {email}, "password": {password}}), nil
		},
	},
}

// retryableLoginStatus reports whether a failed attempt may fall through to
// the next payload shape. 401 is on the list because the backend has been
// seen to answer a wrongly shaped body with it.
func retryableLoginStatus(status int) bool {
	switch status {
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusUnsupportedMediaType,
		http.StatusUnprocessableEntity:
		return true
	}
	return false
}

// Login negotiates the login payload shape with the backend. Attempts are
// made in order and stop at the first success or at the first failure whose
// status does not allow a fallback. The bearer token is never sent here.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var last *response

	for _, attempt := range loginAttempts {
		p, err := attempt.build(email, password)
		if err != nil {
			return nil, err
		}

		resp, err := c.do(ctx, http.MethodPost, loginPath, p, requestOpts{anonymous: true})
		if err != nil {
			return nil, err
		}
		if resp.ok() {
			return parseLoginResult(resp)
		}

		last = resp
		c.log.Debug(ctx, "login attempt rejected", "attempt", attempt.name, "status", resp.status)
		if !retryableLoginStatus(resp.status) {
			break
		}
	}

	return nil, &LoginError{Status: last.status, Message: last.body.message(last.status)}
}

func parseLoginResult(resp *response) (*LoginResult, error) {
	token := resp.body.stringField("access_token")
	if token == "" {
		token = resp.body.stringField("token")
	}
	if token == "" {
		return nil, ErrNoToken
	}

	res := &LoginResult{Token: token}
	if raw, ok := resp.body.field("user"); ok && raw != nil {
		var wrapper struct {
			User models.UserProfile `json:"user"`
		}
		if err := resp.body.decode(&wrapper); err != nil {
			return nil, fmt.Errorf("decode user profile: %w", err)
		}
		res.User = wrapper.User
	}
	return res, nil
}
