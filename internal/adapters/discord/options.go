package discord

import (
	"github.com/xentee/skinticket/pkg/logger"
)

type settings struct {
	guildID         string
	ticketChannelID string
	categoryID      string
	staffRoleID     string
	brand           string
	maxQueryLength  int
	logger          logger.Logger
}

func defaultSettings() settings {
	return settings{
		brand:          "Xentee",
		maxQueryLength: 80,
		logger:         logger.NewNop(),
	}
}

// Option configures the Bot and the Wizard.
type Option func(*settings)

// WithGuildID sets the guild tickets are created in.
func WithGuildID(id string) Option {
	return func(s *settings) { s.guildID = id }
}

// WithTicketChannelID sets the channel the panel is posted to.
func WithTicketChannelID(id string) Option {
	return func(s *settings) { s.ticketChannelID = id }
}

// WithCategoryID sets the parent category of ticket channels.
func WithCategoryID(id string) Option {
	return func(s *settings) { s.categoryID = id }
}

// WithStaffRoleID grants a role access to every ticket channel.
func WithStaffRoleID(id string) Option {
	return func(s *settings) { s.staffRoleID = id }
}

// WithBrandName sets the shop name used in prompts.
func WithBrandName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.brand = name
		}
	}
}

// WithMaxQueryLength caps the item search input.
func WithMaxQueryLength(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxQueryLength = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}
