package output

import "gloss/internal/domain/entities"

// MessageStore is the catalog the resolver falls back to once no override fires.
// Implementations own locale bookkeeping, interpolation and plural selection.
type MessageStore interface {
	// Raw returns the uninterpolated catalog entry for key, trying the
	// fallback locale when locale has none.
	Raw(key, locale string) (entities.Line, bool)
	// Get returns the interpolated entry for key. Function lines are rendered
	// with replacements before interpolation. The behaviour for unknown keys
	// is up to the implementation.
	Get(key string, replacements entities.Replacements, locale string) string
	// Interpolate substitutes named placeholders in template.
	Interpolate(template string, replacements entities.Replacements) string
	// ChoosePluralForm picks the segment of a "|"-separated template for count.
	// Fractional counts take the plural rules for decimals.
	ChoosePluralForm(template string, count float64, locale string) string
	Locale() string
	FallbackLocale() string
}
