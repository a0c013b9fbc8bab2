package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xentee/skinticket/internal/adapters/discord"
	"github.com/xentee/skinticket/internal/config"
)

func newPostPanelCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "post-panel",
		Short: "Post the ticket panel to the configured channel",
		Long: `Post-panel sends the bilingual "create my ticket" embed and button
to TICKET_CHANNEL_ID. It only uses the REST API; the bot does not
need to be running.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, err := config.Load(ctx)
			if err != nil {
				return err
			}
			if err := cfg.ValidateBot(); err != nil {
				return err
			}
			if cfg.TicketChannelID == "" {
				return discord.ErrMissingChannel
			}

			bot, err := discord.NewBot(cfg.DiscordToken, nil, discord.OptionsFromConfig(cfg, flags.log)...)
			if err != nil {
				return err
			}
			msg, err := bot.PostPanel(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "panel posted: message %s in channel %s\n", msg.ID, msg.ChannelID)
			return err
		},
	}
}
