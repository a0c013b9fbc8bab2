package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrMissingQuery     = errors.New("missing query parameter q")
	ErrQueryTooLong     = errors.New("query too long")
	ErrMethodNotAllowed = errors.New("method not allowed")
)
