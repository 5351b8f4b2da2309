package domain

import (
	"fmt"
	"strings"

	"gloss/internal/domain/entities"
)

// ParseReplacements parses "name=value" pairs. Blank pairs are skipped; a
// later pair overrides an earlier one with the same name.
func ParseReplacements(pairs []string) (entities.Replacements, error) {
	var out entities.Replacements
	for _, pair := range pairs {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidReplacement, pair)
		}
		if out == nil {
			out = make(entities.Replacements)
		}
		out[name] = strings.TrimSpace(value)
	}
	return out, nil
}
