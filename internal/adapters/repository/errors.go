package repository

import "errors"

// Sentinel kinds for session errors.
var (
	ErrSessionNotFound = errors.New("ticket session not found")
	ErrSessionExists   = errors.New("ticket session already exists")
	ErrInvalidSession  = errors.New("invalid ticket session")
)
