package discord

import (
	"strings"

	"gloss/internal/domain"
	"gloss/internal/domain/entities"
)

// ParseParams parses a comma separated "name=Ada,count=2" option value.
func ParseParams(s string) (entities.Replacements, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return domain.ParseReplacements(strings.Split(s, ","))
}
