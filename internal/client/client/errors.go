package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("connection error")
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("not authorized")
	ErrValidation   = errors.New("invalid data")
	ErrNotFound     = errors.New("not found")
	ErrNoToken      = errors.New("no authentication token received")
)

// StatusError is returned for every non-2xx response. Message is the
// human-readable text extracted from the response body (or a per-call
// override for 401/403), Status the HTTP status code.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// Unwrap maps well-known statuses onto the package sentinels so callers can
// use errors.Is(err, client.ErrForbidden) and friends.
func (e *StatusError) Unwrap() error { return sentinelFor(e.Status) }

// LoginError is returned when every login negotiation attempt failed, or an
// attempt failed with a status that does not allow a fallback.
type LoginError struct {
	Status  int
	Message string
}

func (e *LoginError) Error() string { return e.Message }

func (e *LoginError) Unwrap() error { return sentinelFor(e.Status) }

func sentinelFor(status int) error {
	switch status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusUnprocessableEntity:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// StatusOf returns the HTTP status carried by err, or 0 when err did not come
// from a backend response.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	var le *LoginError
	if errors.As(err, &le) {
		return le.Status
	}
	return 0
}
