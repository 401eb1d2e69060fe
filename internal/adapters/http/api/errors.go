package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("missing or invalid admin token")
	ErrAdminOff     = errors.New("admin interface not configured")
)
