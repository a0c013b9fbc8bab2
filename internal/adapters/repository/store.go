// Package repository holds per-channel ticket sessions.
package repository

import (
	"context"

	"github.com/xentee/skinticket/internal/domain/model"
)

// Store provides the create/read/update/expire lifecycle of ticket sessions,
// keyed by the ticket channel ID.
type Store interface {
	// Create registers a new session. Returns ErrSessionExists if the
	// channel already has one.
	Create(ctx context.Context, t *model.Ticket) error

	// Get returns a copy of the session.
	// Returns ErrSessionNotFound if the channel is unknown or expired.
	Get(ctx context.Context, channelID string) (*model.Ticket, error)

	// Update applies fn to the session under the store lock. If fn returns
	// an error the session is left unchanged. The updated copy is returned.
	Update(ctx context.Context, channelID string, fn func(*model.Ticket) error) (*model.Ticket, error)

	Delete(ctx context.Context, channelID string) error

	// Len returns the number of live sessions.
	Len(ctx context.Context) int
}
