package scrape

import "errors"

var (
	// ErrUpstreamStatus is returned when the site answers with a non-2xx status.
	ErrUpstreamStatus = errors.New("upstream returned non-success status")
	// ErrNetwork covers DNS, connect, TLS and timeout failures.
	ErrNetwork = errors.New("upstream request failed")
)
