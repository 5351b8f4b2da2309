package i18n

import (
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"gloss/internal/domain/entities"
	"gloss/internal/ports/output"
)

// Ensure Catalog implements the output.MessageStore port.
var _ output.MessageStore = (*Catalog)(nil)

// Catalog is an in-memory message store keyed by canonical BCP 47 locale.
//
// Lookups try the requested locale, its base language, then the fallback
// locale. Unknown keys resolve to the key itself.
type Catalog struct {
	mu       sync.RWMutex
	messages map[string]map[string]entities.Line
	locale   string
	fallback string

	logger    zerolog.Logger
	onMissing func(locale, key string)

	// missing deduplicates missing-key logs. The key is locale+"\x00"+key.
	missing sync.Map
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithMissingKeyHandler sets a callback invoked on every lookup of a key that
// no candidate locale defines.
func WithMissingKeyHandler(handler func(locale, key string)) Option {
	return func(c *Catalog) {
		c.onMissing = handler
	}
}

// WithLogger replaces the catalog logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// NewCatalog builds an empty Catalog for the given current and fallback
// locales (e.g. "fr", "en").
func NewCatalog(locale, fallback string, opts ...Option) *Catalog {
	c := &Catalog{
		messages: make(map[string]map[string]entities.Line),
		locale:   Canonical(locale),
		fallback: Canonical(fallback),
		logger:   log.With().Str("sys", "i18n").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AddMessages merges messages into locale, replacing existing keys.
func (c *Catalog) AddMessages(locale string, messages map[string]string) {
	lines := make(map[string]entities.Line, len(messages))
	for key, value := range messages {
		lines[key] = entities.Line{Template: value}
	}
	c.addLines(locale, lines)
}

func (c *Catalog) AddMessage(locale, key, value string) {
	c.AddMessages(locale, map[string]string{key: value})
}

// AddFunc stores a function line for key. Get calls fn with the lookup
// replacements and interpolates what it returns.
func (c *Catalog) AddFunc(locale, key string, fn entities.LineFunc) {
	if fn == nil {
		return
	}
	c.addLines(locale, map[string]entities.Line{key: {Func: fn}})
}

func (c *Catalog) addLines(locale string, lines map[string]entities.Line) {
	locale = Canonical(locale)

	c.mu.Lock()
	defer c.mu.Unlock()

	bucket, ok := c.messages[locale]
	if !ok {
		bucket = make(map[string]entities.Line, len(lines))
		c.messages[locale] = bucket
	}
	for key, line := range lines {
		bucket[key] = line
	}
}

// ImportMessages adds catalog rows, grouped by locale. It returns the number of rows added.
func (c *Catalog) ImportMessages(msgs []entities.Message) int {
	grouped := make(map[string]map[string]string)
	for _, m := range msgs {
		if m.Key == "" || m.Locale == "" {
			continue
		}
		if grouped[m.Locale] == nil {
			grouped[m.Locale] = make(map[string]string)
		}
		grouped[m.Locale][m.Key] = m.Value
	}

	n := 0
	for locale, messages := range grouped {
		c.AddMessages(locale, messages)
		n += len(messages)
	}
	return n
}

// SetLocale switches the current locale.
func (c *Catalog) SetLocale(locale string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locale = Canonical(locale)
}

func (c *Catalog) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

func (c *Catalog) FallbackLocale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fallback
}

// Locales returns the locales that hold at least one message, sorted.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	slices.Sort(out)
	return out
}

// Raw returns the uninterpolated entry for key.
func (c *Catalog) Raw(key, locale string) (entities.Line, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.candidates(locale) {
		if line, ok := c.messages[candidate][key]; ok {
			return line, true
		}
	}
	return entities.Line{}, false
}

// Get returns the interpolated entry for key, or key itself interpolated
// when no candidate locale defines it.
func (c *Catalog) Get(key string, replacements entities.Replacements, locale string) string {
	if locale == "" {
		locale = c.Locale()
	}
	line, ok := c.Raw(key, locale)
	if !ok {
		c.reportMissing(locale, key)
		return Interpolate(key, replacements)
	}
	return Interpolate(line.Render(replacements), replacements)
}

func (c *Catalog) Interpolate(template string, replacements entities.Replacements) string {
	return Interpolate(template, replacements)
}

func (c *Catalog) ChoosePluralForm(template string, count float64, locale string) string {
	if locale == "" {
		locale = c.Locale()
	}
	return Choose(template, count, parseTag(locale))
}

// candidates lists the locales to search for locale, most specific first.
// The caller must hold c.mu.
func (c *Catalog) candidates(locale string) []string {
	if locale == "" {
		locale = c.locale
	}
	out := make([]string, 0, 4)
	add := func(l string) {
		if l != "" && !slices.Contains(out, l) {
			out = append(out, l)
		}
	}
	for _, l := range []string{Canonical(locale), c.fallback} {
		add(l)
		add(baseLanguage(l))
	}
	return out
}

func (c *Catalog) reportMissing(locale, key string) {
	if c.onMissing != nil {
		c.onMissing(locale, key)
	}

	id := locale + "\x00" + key
	if _, loaded := c.missing.LoadOrStore(id, struct{}{}); !loaded {
		c.logger.Debug().
			Str("locale", locale).
			Str("key", key).
			Msg("Missing translation")
	}
}

// Canonical normalises a locale name ("pt_BR", "pt-br") to its BCP 47 form
// ("pt-BR"). Names that do not parse are returned unchanged.
func Canonical(locale string) string {
	if locale == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return locale
	}
	return tag.String()
}

func parseTag(locale string) language.Tag {
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.Und
	}
	return tag
}

// baseLanguage strips everything but the language subtag ("en-US" -> "en").
func baseLanguage(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return locale
	}
	base, conf := tag.Base()
	if conf == language.No {
		return locale
	}
	return base.String()
}
