// Package discord runs the ticket bot: the panel, channel provisioning and
// the step-by-step sell wizard.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/xentee/skinticket/pkg/logger"
)

// Bot owns the gateway connection and feeds interactions to the Wizard.
type Bot struct {
	session *discordgo.Session
	wizard  *Wizard
	cfg     settings
}

// NewBot validates the credentials and prepares a session. Nothing is
// dialed until Run.
func NewBot(token string, svc Service, opts ...Option) (*Bot, error) {
	cfg := defaultSettings()
	for _, opt := range opts {
		opt(&cfg)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}
	if cfg.guildID == "" {
		return nil, ErrMissingGuild
	}

	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return &Bot{
		session: s,
		wizard:  newWizard(s, svc, cfg),
		cfg:     cfg,
	}, nil
}

// Run opens the gateway and serves interactions until ctx is done.
// discordgo dispatches each event on its own goroutine, so a slow search
// does not hold up other tickets.
func (b *Bot) Run(ctx context.Context) error {
	log := b.cfg.logger
	b.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.wizard.SetBotUserID(r.User.ID)
		log.Info(ctx, "discord connected",
			logger.String("user", r.User.Username),
			logger.Int("guilds", len(r.Guilds)))
	})
	b.session.AddHandler(func(_ *discordgo.Session, ic *discordgo.InteractionCreate) {
		b.wizard.Handle(ctx, ic.Interaction)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	log.Info(ctx, "discord bot running", logger.String("guild", b.cfg.guildID))

	<-ctx.Done()
	log.Info(ctx, "closing discord gateway...")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("close discord gateway: %w", err)
	}
	return nil
}

// PostPanel posts the ticket panel to the configured channel. It only
// uses the REST API and does not need Run.
func (b *Bot) PostPanel(ctx context.Context) (*discordgo.Message, error) {
	return PostPanel(ctx, b.session, b.cfg.ticketChannelID)
}
