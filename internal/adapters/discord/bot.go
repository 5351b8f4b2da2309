package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gloss/internal/config"
	"gloss/internal/ports/input"
)

// Bot is the Discord adapter.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	guildID string
	logger  zerolog.Logger
}

// NewBot creates a Bot serving translator over a Discord session.
func NewBot(cfg *config.Config, translator input.TranslatorUseCase) (*Bot, error) {
	if err := cfg.ValidateBot(); err != nil {
		return nil, err
	}

	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}

	bot := &Bot{
		session: s,
		handler: NewHandler(translator, cfg.Locale),
		guildID: cfg.GuildID,
		logger:  log.With().Str("sys", "discord").Logger(),
	}
	bot.setupHandlers()
	return bot, nil
}

func (b *Bot) setupHandlers() {
	b.session.AddHandler(b.handleInteraction)
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case commandName:
			b.handler.HandleCommand(s, i)
		case overrideCommandName:
			b.handler.HandleOverrideCommand(s, i)
		}
	case discordgo.InteractionModalSubmit:
		if i.ModalSubmitData().CustomID == overrideModalID {
			b.handler.HandleOverrideSubmit(s, i)
		}
	}
}

// Start registers the commands and serves interactions until ctx is done.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open session: %w", err)
	}
	defer b.session.Close()

	for _, cmd := range b.handler.Commands() {
		if _, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.guildID, cmd); err != nil {
			b.logger.Warn().Err(err).Str("command", cmd.Name).Msg("Failed to register command")
		}
	}

	b.logger.Info().Msg("Bot online")
	<-ctx.Done()
	return nil
}
