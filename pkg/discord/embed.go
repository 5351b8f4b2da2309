package discord

import (
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColor = 0x5865F2

	// Discord rejects embed descriptions longer than this many characters.
	maxDescription = 4096
)

// ResolutionLabels are the localized field names of a resolution embed.
type ResolutionLabels struct {
	Title  string
	Key    string
	Locale string
}

// BuildResolutionEmbed renders a resolved message with the key and locale it came from.
func BuildResolutionEmbed(labels ResolutionLabels, key, locale, text string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       labels.Title,
		Description: truncate(text, maxDescription),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: labels.Key, Value: "`" + key + "`", Inline: true},
			{Name: labels.Locale, Value: locale, Inline: true},
		},
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}
