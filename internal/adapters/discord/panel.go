package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// PanelMessage is the "Create my ticket" embed with its open_ticket button.
func PanelMessage(now time.Time) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{{
			Title:       panelTitle,
			Description: panelDescription,
			Timestamp:   now.Format(time.RFC3339),
		}},
		Components: []discordgo.MessageComponent{
			row(button(idOpenTicket, panelButton, discordgo.PrimaryButton)),
		},
	}
}

// PostPanel sends the ticket panel to channelID.
func PostPanel(ctx context.Context, s Session, channelID string) (*discordgo.Message, error) {
	if channelID == "" {
		return nil, ErrMissingChannel
	}
	msg, err := s.ChannelMessageSendComplex(channelID, PanelMessage(time.Now()), discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("post panel to %s: %w", channelID, err)
	}
	return msg, nil
}
