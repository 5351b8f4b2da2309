package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"gloss/internal/domain"
	"gloss/internal/domain/entities"
	pkgdiscord "gloss/pkg/discord"
)

const (
	commandName         = "gloss"
	overrideCommandName = "gloss-override"

	subcommandGet    = "get"
	subcommandChoice = "choice"
)

// commandLocales are the Discord locales command descriptions are translated into.
var commandLocales = []discordgo.Locale{discordgo.French, discordgo.Czech}

// resolveRequest is a parsed /gloss invocation.
type resolveRequest struct {
	Subcommand string
	Key        string
	Params     string
	Count      int64
}

// Commands returns the application commands, described in the default locale
// with translations for commandLocales.
func (h *Handler) Commands() []*discordgo.ApplicationCommand {
	option := func(t discordgo.ApplicationCommandOptionType, name, key string, required bool) *discordgo.ApplicationCommandOption {
		return &discordgo.ApplicationCommandOption{
			Type:                     t,
			Name:                     name,
			Description:              h.text(key, h.defaultLocale, nil),
			DescriptionLocalizations: h.localizations(key),
			Required:                 required,
		}
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:                     commandName,
			Description:              h.text("bot.command.summary", h.defaultLocale, nil),
			DescriptionLocalizations: ptr(h.localizations("bot.command.summary")),
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:                     discordgo.ApplicationCommandOptionSubCommand,
					Name:                     subcommandGet,
					Description:              h.text("bot.command.get", h.defaultLocale, nil),
					DescriptionLocalizations: h.localizations("bot.command.get"),
					Options: []*discordgo.ApplicationCommandOption{
						option(discordgo.ApplicationCommandOptionString, "key", "bot.option.key", true),
						option(discordgo.ApplicationCommandOptionString, "params", "bot.option.params", false),
					},
				},
				{
					Type:                     discordgo.ApplicationCommandOptionSubCommand,
					Name:                     subcommandChoice,
					Description:              h.text("bot.command.choice", h.defaultLocale, nil),
					DescriptionLocalizations: h.localizations("bot.command.choice"),
					Options: []*discordgo.ApplicationCommandOption{
						option(discordgo.ApplicationCommandOptionString, "key", "bot.option.key", true),
						option(discordgo.ApplicationCommandOptionInteger, "count", "bot.option.count", true),
						option(discordgo.ApplicationCommandOptionString, "params", "bot.option.params", false),
					},
				},
			},
		},
		{
			Name:                     overrideCommandName,
			Description:              h.text("bot.command.override", h.defaultLocale, nil),
			DescriptionLocalizations: ptr(h.localizations("bot.command.override")),
			// Overrides apply to every guild the bot serves.
			DefaultMemberPermissions: ptr(int64(discordgo.PermissionManageGuild)),
		},
	}
}

func (h *Handler) localizations(key string) map[discordgo.Locale]string {
	out := make(map[discordgo.Locale]string, len(commandLocales))
	for _, locale := range commandLocales {
		out[locale] = h.text(key, string(locale), nil)
	}
	return out
}

func ptr[T any](v T) *T {
	return &v
}

// HandleCommand answers /gloss get and /gloss choice with an ephemeral embed.
func (h *Handler) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	locale := interactionLocale(i.Interaction, h.defaultLocale)
	req := requestFromOption(data.Options[0])

	embed, err := h.answer(locale, req)
	if err != nil {
		respondEphemeral(s, i.Interaction, pkgdiscord.ErrorMessage(h.translator, locale, err, entities.Replacements{"key": req.Key}))
		return
	}
	respondEmbed(s, i.Interaction, embed)
}

func requestFromOption(sub *discordgo.ApplicationCommandInteractionDataOption) resolveRequest {
	req := resolveRequest{Subcommand: sub.Name}
	for _, opt := range sub.Options {
		switch opt.Name {
		case "key":
			req.Key = opt.StringValue()
		case "params":
			req.Params = opt.StringValue()
		case "count":
			req.Count = opt.IntValue()
		}
	}
	return req
}

// answer resolves req for locale and renders the result.
func (h *Handler) answer(locale string, req resolveRequest) (*discordgo.MessageEmbed, error) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return nil, domain.ErrEmptyKey
	}
	if !h.translator.Has(key, locale) {
		return nil, domain.ErrUnknownKey
	}

	replacements, err := pkgdiscord.ParseParams(req.Params)
	if err != nil {
		return nil, err
	}

	var text string
	switch req.Subcommand {
	case subcommandChoice:
		text, err = h.translator.Choice(key, req.Count, replacements, locale)
	default:
		text, err = h.translator.Resolve(key, replacements, locale)
	}
	if err != nil {
		return nil, err
	}

	labels := pkgdiscord.ResolutionLabels{
		Title:  h.text("bot.result.title", locale, nil),
		Key:    h.text("bot.result.key", locale, nil),
		Locale: h.text("bot.result.locale", locale, nil),
	}
	return pkgdiscord.BuildResolutionEmbed(labels, key, locale, text), nil
}
