package i18n

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

var (
	conditionPattern = regexp.MustCompile(`(?s)^[\{\[]([^\[\]\{\}]*)[\}\]](.*)$`)
	conditionPrefix  = regexp.MustCompile(`^[\{\[]([^\[\]\{\}]*)[\}\]]`)

	// formOrder is the segment order of "|"-separated plural templates.
	formOrder = []plural.Form{plural.Zero, plural.One, plural.Two, plural.Few, plural.Many, plural.Other}

	formsCache sync.Map // key: tag string, value: []plural.Form
)

// Choose picks the segment of line that applies to count.
//
// Segments may carry explicit conditions: "{0}" for an exact value, "[1,5]"
// for an inclusive range and "[6,*]" or "[*,5]" for open ranges. The first
// segment whose condition holds wins. Otherwise conditions are stripped and
// the segment at the plural index of count for tag is used, falling back to
// the first segment.
func Choose(line string, count float64, tag language.Tag) string {
	segments := strings.Split(line, "|")

	for _, segment := range segments {
		if value, ok := matchCondition(segment, count); ok {
			return strings.TrimSpace(value)
		}
	}

	for i, segment := range segments {
		segments[i] = conditionPrefix.ReplaceAllString(segment, "")
	}

	index := PluralIndex(tag, count)
	if len(segments) == 1 || index >= len(segments) {
		return segments[0]
	}
	return segments[index]
}

// PluralIndex returns the position of count's plural form among the forms
// the language uses for integers, in zero, one, two, few, many, other order.
// Fractional counts are matched with their visible decimal digits, so 1.5 is
// plural in English.
func PluralIndex(tag language.Tag, count float64) int {
	i, v, w, f, t := operands(count)
	form := plural.Cardinal.MatchPlural(tag, i, v, w, f, t)
	forms := IntegerForms(tag)
	if index := slices.Index(forms, form); index >= 0 {
		return index
	}
	// Forms only reached by large or fractional numbers (French "many" for
	// millions, Czech "many" for decimals) share the last segment.
	return len(forms) - 1
}

// operands splits count into the CLDR plural operands i, v, w, f and t.
func operands(count float64) (i, v, w, f, t int) {
	count = math.Abs(count)
	digits := strconv.FormatFloat(count, 'f', -1, 64)
	whole, fraction, _ := strings.Cut(digits, ".")
	i, _ = strconv.Atoi(whole)
	if fraction == "" {
		return i, 0, 0, 0, 0
	}
	f, _ = strconv.Atoi(fraction)
	// The shortest representation carries no trailing zeros.
	return i, len(fraction), len(fraction), f, f
}

// IntegerForms lists the plural forms tag selects for small non-negative
// integers, ordered as they appear in a plural template.
func IntegerForms(tag language.Tag) []plural.Form {
	key := tag.String()
	if cached, ok := formsCache.Load(key); ok {
		return cached.([]plural.Form)
	}

	seen := make(map[plural.Form]bool, len(formOrder))
	for n := 0; n <= 200; n++ {
		seen[plural.Cardinal.MatchPlural(tag, n, 0, 0, 0, 0)] = true
	}

	forms := make([]plural.Form, 0, len(seen))
	for _, form := range formOrder {
		if seen[form] {
			forms = append(forms, form)
		}
	}

	formsCache.Store(key, forms)
	return forms
}

func matchCondition(segment string, n float64) (string, bool) {
	m := conditionPattern.FindStringSubmatch(segment)
	if m == nil {
		return "", false
	}
	condition, value := strings.TrimSpace(m[1]), m[2]

	if from, to, ok := strings.Cut(condition, ","); ok {
		from, to = strings.TrimSpace(from), strings.TrimSpace(to)
		switch {
		case from == "*" && to == "*":
			return value, true
		case to == "*":
			if lo, err := strconv.ParseFloat(from, 64); err == nil && n >= lo {
				return value, true
			}
		case from == "*":
			if hi, err := strconv.ParseFloat(to, 64); err == nil && n <= hi {
				return value, true
			}
		default:
			lo, errLo := strconv.ParseFloat(from, 64)
			hi, errHi := strconv.ParseFloat(to, 64)
			if errLo == nil && errHi == nil && n >= lo && n <= hi {
				return value, true
			}
		}
		return "", false
	}

	if exact, err := strconv.ParseFloat(condition, 64); err == nil && exact == n {
		return value, true
	}
	return "", false
}
