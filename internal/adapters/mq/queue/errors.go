package queue

import "errors"

// Sentinel kinds for enqueue failures.
var (
	ErrQueueFull   = errors.New("resolve queue is full")
	ErrQueueClosed = errors.New("resolve queue is closed")
)
