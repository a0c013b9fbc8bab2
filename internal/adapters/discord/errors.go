package discord

import "errors"

// Sentinel errors for bot construction and wizard steps.
var (
	ErrMissingToken   = errors.New("discord token is required")
	ErrMissingGuild   = errors.New("discord guild id is required")
	ErrMissingChannel = errors.New("ticket channel id is required")
	ErrUnknownAction  = errors.New("unknown interaction")
)
