package discord

import (
	"github.com/xentee/skinticket/internal/config"
	"github.com/xentee/skinticket/pkg/logger"
)

// OptionsFromConfig maps the Discord settings of cfg onto bot options.
func OptionsFromConfig(cfg *config.Config, log logger.Logger) []Option {
	return []Option{
		WithGuildID(cfg.GuildID),
		WithTicketChannelID(cfg.TicketChannelID),
		WithCategoryID(cfg.TicketCategoryID),
		WithStaffRoleID(cfg.StaffRoleID),
		WithBrandName(cfg.BrandName),
		WithMaxQueryLength(cfg.MaxQueryLength),
		WithLogger(log.Named("discord")),
	}
}
