package discord

import (
	"gloss/internal/domain"
	"gloss/internal/domain/entities"
)

const fallbackErrorMessage = "Something went wrong."

// Resolver is the slice of the translator the helpers need.
type Resolver interface {
	Resolve(key string, replacements entities.Replacements, locale string) (string, error)
}

// ErrorKey maps an error to the catalog key of its user-facing message.
func ErrorKey(err error) string {
	if code := domain.Code(err); code != "" {
		return "errors." + code
	}
	return "errors.generic"
}

// ErrorMessage resolves the user-facing message for err in locale. Error
// texts go through the same overrides as every other message.
func ErrorMessage(r Resolver, locale string, err error, replacements entities.Replacements) string {
	if err == nil {
		return ""
	}
	msg, rerr := r.Resolve(ErrorKey(err), replacements, locale)
	if rerr != nil || msg == "" {
		return fallbackErrorMessage
	}
	return msg
}
