package i18n

import (
	"cmp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"

	"gloss/internal/domain/entities"
)

// Interpolate replaces :name placeholders in line. Each replacement also
// answers to :Name (first letter upper-cased) and :NAME (whole value
// upper-cased). Longer placeholders win, so :startDate is not clobbered by :start.
func Interpolate(line string, replacements entities.Replacements) string {
	if len(replacements) == 0 || !strings.Contains(line, ":") {
		return line
	}

	subs := make(map[string]string, len(replacements)*3)
	for key, raw := range replacements {
		if key == "" {
			continue
		}
		value := cast.ToString(raw)
		subs[":"+upperFirst(key)] = upperFirst(value)
		subs[":"+strings.ToUpper(key)] = strings.ToUpper(value)
	}
	// Plain placeholders are written last so they win when a key is already upper-case.
	for key, raw := range replacements {
		if key != "" {
			subs[":"+key] = cast.ToString(raw)
		}
	}

	from := make([]string, 0, len(subs))
	for k := range subs {
		from = append(from, k)
	}
	slices.SortFunc(from, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, len(from)*2)
	for _, k := range from {
		pairs = append(pairs, k, subs[k])
	}
	return strings.NewReplacer(pairs...).Replace(line)
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
