package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/xentee/skinticket/internal/adapters/repository"
	"github.com/xentee/skinticket/internal/domain/model"
)

// Session is the subset of *discordgo.Session the wizard calls.
type Session interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Service is what the wizard needs from the ticket service.
type Service interface {
	Search(ctx context.Context, query string) []model.Candidate
	SeenAndRecord(ctx context.Context, id string) bool
	Unrecord(ctx context.Context, id string)
	Sessions() repository.Store
}

var _ Session = (*discordgo.Session)(nil)
