package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"gloss/internal/domain"
	"gloss/internal/domain/entities"
	pkgdiscord "gloss/pkg/discord"
)

const (
	overrideModalID = "gloss_override_modal"

	fieldKey      = "key"
	fieldValue    = "value"
	fieldRedirect = "redirect"
)

// HandleOverrideCommand opens the override modal.
func (h *Handler) HandleOverrideCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := interactionLocale(i.Interaction, h.defaultLocale)
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: overrideModalID,
			Title:    h.text("bot.override.title", locale, nil),
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: fieldKey, Label: h.text("bot.override.key_label", locale, nil), Style: discordgo.TextInputShort, Required: true},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: fieldValue, Label: h.text("bot.override.value_label", locale, nil), Style: discordgo.TextInputParagraph, Required: true},
				}},
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{CustomID: fieldRedirect, Label: h.text("bot.override.redirect_label", locale, nil), Style: discordgo.TextInputShort, Required: false, MaxLength: 5},
				}},
			},
		},
	})
}

// HandleOverrideSubmit registers the override described by the submitted modal.
func (h *Handler) HandleOverrideSubmit(s *discordgo.Session, i *discordgo.InteractionCreate) {
	locale := interactionLocale(i.Interaction, h.defaultLocale)
	values := pkgdiscord.ExtractModalValues(i.ModalSubmitData())

	msg, err := h.registerOverride(locale, values)
	if err != nil {
		msg = pkgdiscord.ErrorMessage(h.translator, locale, err, entities.Replacements{"key": values[fieldKey]})
	}
	respondEphemeral(s, i.Interaction, msg)
}

// registerOverride adds a key or value override from modal values and
// returns the confirmation text.
func (h *Handler) registerOverride(locale string, values map[string]string) (string, error) {
	key := strings.TrimSpace(values[fieldKey])
	if key == "" {
		return "", domain.ErrEmptyKey
	}
	value := values[fieldValue]

	if isYes(values[fieldRedirect]) {
		h.translator.RegisterKeyOverride(key, strings.TrimSpace(value), nil)
	} else {
		h.translator.RegisterValueOverride(key, value, nil)
	}
	n := h.registered.Add(1)

	saved := h.text("bot.override.saved", locale, entities.Replacements{"key": key})
	total, err := h.translator.Choice("bot.overrides", n, nil, locale)
	if err != nil {
		return saved, nil
	}
	return saved + "\n" + total, nil
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "o", "oui", "a", "ano", "true", "1":
		return true
	default:
		return false
	}
}
