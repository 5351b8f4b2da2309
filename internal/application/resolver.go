package application

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cast"

	"gloss/internal/domain"
	"gloss/internal/domain/entities"
	"gloss/internal/ports/input"
	"gloss/internal/ports/output"
)

// DefaultMaxDepth bounds the number of nested resolution steps (key
// redirections and extension hops) for a single Resolve or Choice call.
const DefaultMaxDepth = 32

// Ensure Resolver implements the input.TranslatorUseCase port.
var _ input.TranslatorUseCase = (*Resolver)(nil)

// Resolver layers key overrides, value overrides and extensions on top of a
// MessageStore. Lookup order for a key is: extensions, key override, value
// override, then the store.
type Resolver struct {
	store      output.MessageStore
	overrides  *OverrideRegistry
	extensions *ExtensionRegistry
	logger     zerolog.Logger
	maxDepth   int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth sets the recursion bound. Zero or a negative value disables the guard.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		r.maxDepth = depth
	}
}

// WithLogger replaces the resolver logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver with empty registries in front of store.
func NewResolver(store output.MessageStore, opts ...Option) *Resolver {
	if store == nil {
		panic("gloss: message store is not provided")
	}
	r := &Resolver{
		store:      store,
		overrides:  NewOverrideRegistry(),
		extensions: NewExtensionRegistry(),
		logger:     log.With().Str("sys", "gloss").Logger(),
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) RegisterKeyOverride(shortKey, newKey string, condition entities.Condition) {
	r.overrides.RegisterKeyOverride(shortKey, newKey, condition)
}

func (r *Resolver) RegisterValueOverride(shortKey, value string, condition entities.Condition) {
	r.overrides.RegisterValueOverride(shortKey, value, condition)
}

func (r *Resolver) RegisterValueOverrides(values map[string]string, condition entities.Condition) {
	r.overrides.RegisterValueOverrides(values, condition)
}

func (r *Resolver) RegisterExtension(key string, transform entities.Transform) {
	r.extensions.RegisterExtension(key, transform)
}

// Resolve returns the translation for key. An empty locale means the store's
// current locale.
func (r *Resolver) Resolve(key string, replacements entities.Replacements, locale string) (string, error) {
	return r.resolve(key, replacements, r.locale(locale), nil, false)
}

// Choice resolves key like Resolve, then selects the plural form for count and
// interpolates with count added to the replacements. count may be a number,
// a numeric string or a collection, in which case its length is used.
func (r *Resolver) Choice(key string, count any, replacements entities.Replacements, locale string) (string, error) {
	n, value, err := countOf(count)
	if err != nil {
		return "", err
	}
	locale = r.locale(locale)

	line, err := r.resolve(key, replacements, locale, nil, false)
	if err != nil {
		return "", err
	}

	chosen := r.store.ChoosePluralForm(line, n, locale)
	return r.store.Interpolate(chosen, replacements.With("count", value)), nil
}

// Has reports whether key has any registered override or extension, or a
// catalog entry for locale. Conditions are not evaluated.
func (r *Resolver) Has(key, locale string) bool {
	if r.overrides.hasAny(key) || r.extensions.HasExtensions(key) {
		return true
	}
	_, ok := r.store.Raw(key, r.locale(locale))
	return ok
}

func (r *Resolver) locale(locale string) string {
	if locale != "" {
		return locale
	}
	if current := r.store.Locale(); current != "" {
		return current
	}
	return r.store.FallbackLocale()
}

// resolve looks key up. derived marks a key produced by an extension; when
// the store has no entry for it, it is interpolated as text and not reported
// missing.
func (r *Resolver) resolve(key string, replacements entities.Replacements, locale string, trail []string, derived bool) (string, error) {
	trail = append(trail, key)
	if r.maxDepth > 0 && len(trail) > r.maxDepth+1 {
		err := &domain.CyclicOverrideError{Key: key, Depth: len(trail) - 1, Trail: slices.Clone(trail)}
		r.logger.Warn().
			Str("key", key).
			Str("locale", locale).
			Int("depth", err.Depth).
			Msg("Resolution aborted")
		return "", err
	}

	if r.extensions.HasExtensions(key) {
		raw, err := r.resolveOverrides(key, nil, locale, trail, derived)
		if err != nil {
			return "", err
		}
		// An extension that hands back its own trigger key has nothing left to rewrite.
		if extended := r.extensions.ApplyExtensions(key, raw); extended != key {
			return r.resolve(extended, replacements, locale, trail, true)
		}
	}

	return r.resolveOverrides(key, replacements, locale, trail, derived)
}

func (r *Resolver) resolveOverrides(key string, replacements entities.Replacements, locale string, trail []string, derived bool) (string, error) {
	if target, ok := r.overrides.LookupKeyOverride(key, replacements); ok {
		return r.resolve(target, replacements, locale, trail, false)
	}
	if value, ok := r.overrides.LookupValueOverride(key, replacements); ok {
		return r.store.Interpolate(value, replacements), nil
	}
	if derived {
		if _, ok := r.store.Raw(key, locale); !ok {
			return r.store.Interpolate(key, replacements), nil
		}
	}
	return r.store.Get(key, replacements, locale), nil
}

// countOf returns the number used for plural selection and the value exposed
// as the :count placeholder.
func countOf(count any) (float64, any, error) {
	switch c := count.(type) {
	case nil:
		return 0, nil, fmt.Errorf("%w: got nil", domain.ErrInvalidCount)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return cast.ToFloat64(c), c, nil
	case float32, float64:
		n := cast.ToFloat64(c)
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, nil, fmt.Errorf("%w: %v", domain.ErrInvalidCount, c)
		}
		return n, c, nil
	case string:
		return countOfString(c)
	case interface{ Len() int }:
		n := c.Len()
		return float64(n), n, nil
	}

	v := reflect.ValueOf(count)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return float64(v.Len()), v.Len(), nil
	case reflect.Pointer:
		if !v.IsNil() {
			return countOf(v.Elem().Interface())
		}
	}
	return 0, nil, fmt.Errorf("%w: got %T", domain.ErrInvalidCount, count)
}

// countOfString reads s as a base 10 integer or decimal number.
func countOfString(s string) (float64, any, error) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return float64(n), n, nil
	}
	// ParseFloat also takes hexadecimal mantissas, which are not counts.
	if !strings.ContainsAny(trimmed, "xX") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return countOf(f)
		}
	}
	return 0, nil, fmt.Errorf("%w: %q", domain.ErrInvalidCount, s)
}
