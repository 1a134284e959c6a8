// Package client talks to the classifieds REST backend.
//
// # Overview
//
// The package provides:
//  1. Narrow API contracts (AuthAPI, AdsAPI, AdminAPI, ContactAPI) that the
//     services depend on, so they can be faked in tests.
//  2. HTTPClient, the net/http implementation. It attaches the bearer token
//     from a TokenSource whenever one is present, keeps a cookie jar for
//     cookie-based session fallback, tags every request with an X-Request-ID
//     and optionally paces requests with a token-bucket limiter.
//  3. The login negotiation (see HTTPClient.Login): up to three payload
//     shapes are tried in a fixed order until the backend accepts one.
//
// # Error Handling
//
// Failures are reported as sentinel errors matched with errors.Is:
// ErrUnavailable (the backend could not be reached), ErrUnauthorized (401),
// ErrForbidden (403), ErrValidation (422), ErrNotFound (404) and ErrNoToken.
// Every non-2xx response is a *StatusError carrying the status and the
// message extracted from the body; login failures are a *LoginError.
//
// Response bodies are read tolerantly: empty, truncated or non-JSON bodies
// never fail a call that otherwise succeeded.
package client
