package discord

import (
	"sync/atomic"

	"gloss/internal/domain/entities"
	"gloss/internal/ports/input"
)

// Handler handles Discord interactions through the translator use case.
type Handler struct {
	translator    input.TranslatorUseCase
	defaultLocale string

	// registered counts overrides added through the bot since startup.
	registered atomic.Int64
}

// NewHandler creates a Handler.
func NewHandler(translator input.TranslatorUseCase, defaultLocale string) *Handler {
	return &Handler{
		translator:    translator,
		defaultLocale: defaultLocale,
	}
}

// text resolves a bot message, falling back to the key when resolution fails.
func (h *Handler) text(key, locale string, replacements entities.Replacements) string {
	msg, err := h.translator.Resolve(key, replacements, locale)
	if err != nil {
		return key
	}
	return msg
}
