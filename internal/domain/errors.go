package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrMalformedErrorBody is returned by the error-body parser when the
	// payload does not match the backend's {errors: [...]} schema.
	ErrMalformedErrorBody = errors.New("malformed error body")
)
