package application_test

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gloss/internal/application"
	"gloss/internal/domain"
	"gloss/internal/domain/entities"
	"gloss/internal/infrastructure/i18n"
)

func newCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	return i18n.NewCatalog("en", "en", i18n.WithLogger(zerolog.Nop()))
}

func newResolver(c *i18n.Catalog, opts ...application.Option) *application.Resolver {
	return application.NewResolver(c, append([]application.Option{application.WithLogger(zerolog.Nop())}, opts...)...)
}

func resolve(t *testing.T, r *application.Resolver, key string, replacements entities.Replacements, locale string) string {
	t.Helper()
	got, err := r.Resolve(key, replacements, locale)
	require.NoError(t, err)
	return got
}

func choice(t *testing.T, r *application.Resolver, key string, count any, locale string) string {
	t.Helper()
	got, err := r.Choice(key, count, nil, locale)
	require.NoError(t, err)
	return got
}

func TestNewResolver_NilStorePanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { application.NewResolver(nil) })
}

func TestResolve_PassesThroughToStore(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.greeting", "Hello :name")
	r := newResolver(c)

	repl := entities.Replacements{"name": "Ada"}
	assert.Equal(t, c.Get("test.greeting", repl, "en"), resolve(t, r, "test.greeting", repl, ""))
	assert.Equal(t, "Hello Ada", resolve(t, r, "test.greeting", repl, ""))
	assert.Equal(t, "missing.key", resolve(t, r, "missing.key", repl, ""))
}

func TestResolve_ValueOverride(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.resource.create", "Create :resource")
	r := newResolver(c)

	r.RegisterValueOverride("test.resource.create", "Create my resource", nil)

	for _, repl := range []entities.Replacements{nil, {"resource": "foo"}, {"other": 1}} {
		assert.Equal(t, "Create my resource", resolve(t, r, "test.resource.create", repl, ""))
	}
}

func TestResolve_ValueOverrideIsInterpolatedNotResolved(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "Create :Resource", "not called")
	r := newResolver(c)

	r.RegisterValueOverride("test.create", "Create :Resource", nil)

	assert.Equal(t, "Create Foo", resolve(t, r, "test.create", entities.Replacements{"resource": "foo"}, ""))
	assert.Equal(t, "Create :Resource", resolve(t, r, "test.create", nil, ""))
}

func TestResolve_KeyOverride(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessages("en", map[string]string{
		"test.resource.create": "Create :resource",
		"test.foo.create":      "Foo/Create",
	})
	r := newResolver(c)

	r.RegisterKeyOverride("test.resource.create", "test.foo.create", nil)

	repl := entities.Replacements{"resource": "foo"}
	assert.Equal(t, "Foo/Create", resolve(t, r, "test.resource.create", repl, ""))
	assert.Equal(t, resolve(t, r, "test.foo.create", repl, ""), resolve(t, r, "test.resource.create", repl, ""))
}

func TestResolve_KeyOverrideForwardsReplacementsAndLocale(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.b", "Hello :name")
	c.AddMessage("cs", "test.b", "Ahoj :name")
	r := newResolver(c)

	r.RegisterKeyOverride("test.a", "test.b", nil)

	repl := entities.Replacements{"name": "Ada"}
	assert.Equal(t, "Hello Ada", resolve(t, r, "test.a", repl, ""))
	assert.Equal(t, "Ahoj Ada", resolve(t, r, "test.a", repl, "cs"))
}

func TestResolve_KeyOverridesChain(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessages("en", map[string]string{
		"test.resources.create": "Create :resource",
		"test.foo.create":       "Foo/Create",
		"test.foo.create_new":   "Foo/Create/New",
	})
	r := newResolver(c)

	r.RegisterKeyOverride("test.resource.create", "test.foo.create", nil)
	r.RegisterKeyOverride("test.foo.create", "test.foo.create_new", nil)

	repl := entities.Replacements{"resource": "foo"}
	assert.Equal(t, "Foo/Create/New", resolve(t, r, "test.resource.create", repl, ""))
	assert.Equal(t, resolve(t, r, "test.foo.create_new", repl, ""), resolve(t, r, "test.resource.create", repl, ""))
}

func TestResolve_KeyOverrideBeatsValueOverride(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "target", "from target")
	r := newResolver(c)

	r.RegisterValueOverride("k", "from value", nil)
	r.RegisterKeyOverride("k", "target", nil)

	assert.Equal(t, "from target", resolve(t, r, "k", nil, ""))
}

func TestResolve_ConditionalOverrides(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessages("en", map[string]string{
		"title":       "Default",
		"title.admin": "Admin :name",
	})
	r := newResolver(c)

	r.RegisterKeyOverride("title", "title.admin", entities.Predicate(func(data entities.Replacements) bool {
		return data["role"] == "admin"
	}))
	r.RegisterValueOverride("title", "Mapped", entities.KeyValueMatch{"a": 1})
	r.RegisterValueOverride("title", "Never reached", entities.KeyValueMatch{"a": 1})

	assert.Equal(t, "Admin Ada", resolve(t, r, "title", entities.Replacements{"role": "admin", "name": "Ada"}, ""))
	assert.Equal(t, "Mapped", resolve(t, r, "title", entities.Replacements{"a": 1, "b": 2}, ""))
	assert.Equal(t, "Default", resolve(t, r, "title", entities.Replacements{"a": 2}, ""))
}

type user struct{ ID int }

func TestResolve_ConditionOnStructValue(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "greet", "Hello")
	r := newResolver(c)

	r.RegisterValueOverride("greet", "Hi", entities.KeyValueMatch{"user": user{ID: 1}})

	assert.Equal(t, "Hi", resolve(t, r, "greet", entities.Replacements{"user": user{ID: 1}}, ""))
	assert.Equal(t, "Hello", resolve(t, r, "greet", entities.Replacements{"user": user{ID: 2}}, ""))
}

func TestResolve_FunctionLine(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddFunc("en", "welcome", func(replacements entities.Replacements) string {
		if replacements["returning"] == true {
			return "Welcome back :name"
		}
		return "Welcome :name"
	})
	c.AddMessage("en", "welcome.admin", "Admin :name")
	r := newResolver(c)

	assert.Equal(t, "Welcome Ada", resolve(t, r, "welcome", entities.Replacements{"name": "Ada"}, ""))
	assert.Equal(t, "Welcome back Ada", resolve(t, r, "welcome", entities.Replacements{"name": "Ada", "returning": true}, ""))
	assert.True(t, r.Has("welcome", ""))

	r.RegisterKeyOverride("welcome", "welcome.admin", entities.KeyValueMatch{"role": "admin"})
	assert.Equal(t, "Admin Ada", resolve(t, r, "welcome", entities.Replacements{"name": "Ada", "role": "admin"}, ""))
}

func TestResolve_RegisterValueOverrides(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.foo", "bar")
	c.AddMessage("cs", "test.foo", "baz")
	r := newResolver(c)

	assert.Equal(t, "bar", resolve(t, r, "test.foo", nil, ""))
	assert.Equal(t, "baz", resolve(t, r, "test.foo", nil, "cs"))

	r.RegisterValueOverrides(map[string]string{"test.foo": "xyz"}, nil)

	assert.Equal(t, "xyz", resolve(t, r, "test.foo", nil, ""))
	assert.Equal(t, "xyz", resolve(t, r, "test.foo", nil, "cs"))
}

func TestResolve_FollowsStoreLocale(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.foo", "english")
	c.AddMessage("cs", "test.foo", "czech")
	r := newResolver(c)

	assert.Equal(t, "english", resolve(t, r, "test.foo", nil, ""))
	c.SetLocale("cs")
	assert.Equal(t, "czech", resolve(t, r, "test.foo", nil, ""))
}

var highlight = func(raw string, replace entities.Replacer) string {
	return replace(raw, map[string]string{
		":start": `<span class="font-medium">:start</span>`,
		":end":   `<span class="font-medium">:end</span>`,
		":total": `<span class="font-medium">:total</span>`,
	})
}

func TestResolve_KeyExtension(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.pagination", "Showing :start to :end of :total results")
	c.AddMessage("cs", "test.pagination", "Zobrazeno :start až :end z :total výsledků")
	r := newResolver(c)

	r.RegisterExtension("test.pagination", highlight)

	repl := entities.Replacements{"start": 10, "end": 20, "total": 50}
	assert.Equal(t,
		`Showing <span class="font-medium">10</span> to <span class="font-medium">20</span> of <span class="font-medium">50</span> results`,
		resolve(t, r, "test.pagination", repl, ""),
	)

	c.SetLocale("cs")
	assert.Equal(t,
		`Zobrazeno <span class="font-medium">10</span> až <span class="font-medium">20</span> z <span class="font-medium">50</span> výsledků`,
		resolve(t, r, "test.pagination", repl, ""),
	)
}

func TestResolve_ExtensionOutputIsNotReportedMissing(t *testing.T) {
	t.Parallel()

	var (
		mu     sync.Mutex
		missed []string
	)
	c := i18n.NewCatalog("en", "en",
		i18n.WithLogger(zerolog.Nop()),
		i18n.WithMissingKeyHandler(func(locale, key string) {
			mu.Lock()
			defer mu.Unlock()
			missed = append(missed, locale+"/"+key)
		}),
	)
	c.AddMessage("en", "test.pagination", "Showing :start to :end")
	c.AddMessage("en", "k", "draft")
	c.AddMessage("en", "final", "Final :name")
	r := newResolver(c)

	r.RegisterExtension("test.pagination", highlight)
	r.RegisterExtension("k", func(raw string, replace entities.Replacer) string {
		return replace(raw, map[string]string{"draft": "final"})
	})

	assert.Equal(t,
		`Showing <span class="font-medium">1</span> to <span class="font-medium">5</span>`,
		resolve(t, r, "test.pagination", entities.Replacements{"start": 1, "end": 5}, ""),
	)
	assert.Equal(t, "Final Ada", resolve(t, r, "k", entities.Replacements{"name": "Ada"}, ""), "catalog keys produced by extensions still resolve")
	assert.Empty(t, missed)

	resolve(t, r, "nope", nil, "")
	assert.Equal(t, []string{"en/nope"}, missed)
}

func TestResolve_ValueExtension(t *testing.T) {
	t.Parallel()

	r := newResolver(newCatalog(t))
	line := "Showing :start to :end of :total results"
	r.RegisterExtension(line, highlight)

	assert.Equal(t,
		`Showing <span class="font-medium">10</span> to <span class="font-medium">20</span> of <span class="font-medium">50</span> results`,
		resolve(t, r, line, entities.Replacements{"start": 10, "end": 20, "total": 50}, ""),
	)
}

func TestResolve_ExtensionsFoldInOrder(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessages("en", map[string]string{
		"k":        "base",
		"base-f-g": "folded",
		"base-g-f": "wrong order",
	})
	r := newResolver(c)

	r.RegisterExtension("k", func(raw string, _ entities.Replacer) string { return raw + "-f" })
	r.RegisterExtension("k", func(raw string, _ entities.Replacer) string { return raw + "-g" })

	assert.Equal(t, "folded", resolve(t, r, "k", nil, ""))
}

func TestResolve_ExtensionSeesOverriddenRawValue(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "k", "Hi :name")
	r := newResolver(c)

	r.RegisterExtension("k", func(raw string, replace entities.Replacer) string {
		return replace(raw, map[string]string{":name": "<b>:name</b>"})
	})
	assert.Equal(t, "Hi <b>Ada</b>", resolve(t, r, "k", entities.Replacements{"name": "Ada"}, ""))

	r.RegisterValueOverride("k", "Bye :name", nil)
	assert.Equal(t, "Bye <b>Ada</b>", resolve(t, r, "k", entities.Replacements{"name": "Ada"}, ""))
}

func TestResolve_ExtensionOutputReentersOverrides(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "k", "draft")
	r := newResolver(c)

	r.RegisterExtension("k", func(raw string, replace entities.Replacer) string {
		return replace(raw, map[string]string{"draft": "final"})
	})
	r.RegisterValueOverride("final", "Final :name", nil)

	assert.Equal(t, "Final Ada", resolve(t, r, "k", entities.Replacements{"name": "Ada"}, ""))
}

func TestResolve_ExtensionFixedPoint(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "k", "value")
	r := newResolver(c)

	r.RegisterExtension("k", func(string, entities.Replacer) string { return "k" })

	assert.Equal(t, "value", resolve(t, r, "k", nil, ""))
}

func TestResolve_CyclicKeyOverrides(t *testing.T) {
	t.Parallel()

	r := newResolver(newCatalog(t), application.WithMaxDepth(4))
	r.RegisterKeyOverride("a", "b", nil)
	r.RegisterKeyOverride("b", "a", nil)

	_, err := r.Resolve("a", nil, "")
	require.ErrorIs(t, err, domain.ErrCyclicOverride)

	var cyclic *domain.CyclicOverrideError
	require.True(t, errors.As(err, &cyclic))
	assert.Equal(t, 5, cyclic.Depth)
	assert.Equal(t, []string{"a", "b", "a", "b", "a", "b"}, cyclic.Trail)
	assert.Equal(t, "cyclic_override", domain.Code(err))
}

func TestResolve_CyclicExtensions(t *testing.T) {
	t.Parallel()

	r := newResolver(newCatalog(t))
	r.RegisterExtension("a", func(string, entities.Replacer) string { return "b" })
	r.RegisterExtension("b", func(string, entities.Replacer) string { return "a" })

	_, err := r.Resolve("a", nil, "")
	require.ErrorIs(t, err, domain.ErrCyclicOverride)

	_, err = r.Choice("a", 1, nil, "")
	require.ErrorIs(t, err, domain.ErrCyclicOverride)
}

func TestResolve_DepthBound(t *testing.T) {
	t.Parallel()

	chain := func(hops int, opts ...application.Option) *application.Resolver {
		c := newCatalog(t)
		c.AddMessage("en", fmt.Sprintf("k%d", hops), "end")
		r := newResolver(c, opts...)
		for i := range hops {
			r.RegisterKeyOverride(fmt.Sprintf("k%d", i), fmt.Sprintf("k%d", i+1), nil)
		}
		return r
	}

	got, err := chain(4, application.WithMaxDepth(4)).Resolve("k0", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "end", got)

	_, err = chain(5, application.WithMaxDepth(4)).Resolve("k0", nil, "")
	require.ErrorIs(t, err, domain.ErrCyclicOverride)

	got, err = chain(application.DefaultMaxDepth+10, application.WithMaxDepth(0)).Resolve("k0", nil, "")
	require.NoError(t, err)
	assert.Equal(t, "end", got)
}

func TestChoice_Pluralization(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.apples", "There is one apple|There are many apples")
	c.AddMessage("cs", "test.apples", "Je tam jedno jablko|Je tam mnoho jablek")
	r := newResolver(c)

	assert.Equal(t, "There is one apple", choice(t, r, "test.apples", 1, ""))
	assert.Equal(t, "There are many apples", choice(t, r, "test.apples", 2, ""))
	assert.Equal(t, "There are many apples", choice(t, r, "test.apples", 0, ""))

	assert.Equal(t, "Je tam jedno jablko", choice(t, r, "test.apples", 1, "cs"))
	assert.Equal(t, "Je tam mnoho jablek", choice(t, r, "test.apples", 2, "cs"))
}

func TestChoice_LocalePluralRules(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("cs", "files", ":count soubor|:count soubory|:count souborů")
	r := newResolver(c)

	assert.Equal(t, "1 soubor", choice(t, r, "files", 1, "cs"))
	assert.Equal(t, "3 soubory", choice(t, r, "files", 3, "cs"))
	assert.Equal(t, "5 souborů", choice(t, r, "files", 5, "cs"))
	assert.Equal(t, "0 souborů", choice(t, r, "files", 0, "cs"))
}

func TestChoice_CountPlaceholder(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "items", "{0} No items for :name|{1} One item for :name|[2,*] :count items for :name")
	r := newResolver(c)

	repl := entities.Replacements{"name": "Ada"}
	for count, want := range map[int]string{0: "No items for Ada", 1: "One item for Ada", 7: "7 items for Ada"} {
		got, err := r.Choice("items", count, repl, "")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.NotContains(t, repl, "count", "caller replacements are not mutated")
}

func TestChoice_ValueOverride(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.apples", "There is one apple|There are many apples")
	r := newResolver(c)

	r.RegisterValueOverride("test.apples", "One apple|Many apples", nil)

	assert.Equal(t, "One apple", choice(t, r, "test.apples", 1, ""))
	assert.Equal(t, "Many apples", choice(t, r, "test.apples", 2, ""))
}

func TestChoice_KeyOverride(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.apples", "{1} Je tam jedno jablko|[2,*]Je tam mnoho jablek")
	c.AddMessage("en", "test.apples_with_0", "{0} Není tam žádné jablko|{1} Je tam jedno jablko|[2,*]Je tam mnoho jablek")
	r := newResolver(c)

	r.RegisterKeyOverride("test.apples", "test.apples_with_0", nil)

	assert.Equal(t, "Není tam žádné jablko", choice(t, r, "test.apples", 0, ""))
}

func TestChoice_Extension(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "test.apples", "{0} There are no apples|[1,*]There are :count apples")
	c.AddMessage("cs", "test.apples", "{0} Není tam žádné jablko|[1,*]Je tam :count jablek")
	r := newResolver(c)

	r.RegisterExtension("test.apples", func(raw string, replace entities.Replacer) string {
		return replace(raw, map[string]string{":count": `<span class="font-medium">:count</span>`})
	})

	assert.Equal(t, "There are no apples", choice(t, r, "test.apples", 0, ""))
	assert.Equal(t, `There are <span class="font-medium">2</span> apples`, choice(t, r, "test.apples", 2, ""))
	assert.Equal(t, `Je tam <span class="font-medium">2</span> jablek`, choice(t, r, "test.apples", 2, "cs"))
}

type sized struct{ n int }

func (s sized) Len() int { return s.n }

func TestChoice_CountTypes(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "n", "one :count|many :count")
	r := newResolver(c)

	three := 3
	tests := []struct {
		name     string
		count    any
		expected string
	}{
		{name: "int", count: 1, expected: "one 1"},
		{name: "int64", count: int64(4), expected: "many 4"},
		{name: "uint8", count: uint8(1), expected: "one 1"},
		{name: "float keeps its value", count: 2.5, expected: "many 2.5"},
		{name: "numeric string", count: " 1 ", expected: "one 1"},
		{name: "leading zero is decimal", count: "010", expected: "many 10"},
		{name: "leading zero with 8", count: "08", expected: "many 8"},
		{name: "decimal string", count: "1.5", expected: "many 1.5"},
		{name: "fraction above one is plural", count: 1.5, expected: "many 1.5"},
		{name: "whole float is singular", count: 1.0, expected: "one 1"},
		{name: "slice", count: []string{"a", "b"}, expected: "many 2"},
		{name: "array", count: [1]int{9}, expected: "one 1"},
		{name: "map", count: map[string]int{"a": 1}, expected: "one 1"},
		{name: "Len method", count: sized{n: 5}, expected: "many 5"},
		{name: "pointer", count: &three, expected: "many 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, choice(t, r, "n", tt.count, ""))
		})
	}
}

func TestChoice_FractionSkipsExactCondition(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "apples", "{1} exactly one|:count several")
	r := newResolver(c)

	assert.Equal(t, "exactly one", choice(t, r, "apples", 1, ""))
	assert.Equal(t, "1.5 several", choice(t, r, "apples", 1.5, ""))
	assert.Equal(t, "1.5 several", choice(t, r, "apples", "1.5", ""))
}

func TestChoice_InvalidCount(t *testing.T) {
	t.Parallel()

	r := newResolver(newCatalog(t))

	for _, count := range []any{nil, true, "many", struct{}{}, (*int)(nil), "0x10", "0x1p4", "NaN", math.Inf(1)} {
		_, err := r.Choice("n", count, nil, "")
		require.ErrorIs(t, err, domain.ErrInvalidCount, "%#v", count)
	}
}

func TestHas(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("cs", "only.cs", "jen česky")
	r := newResolver(c)

	assert.False(t, r.Has("k", ""))
	assert.True(t, r.Has("only.cs", "cs"))
	assert.False(t, r.Has("only.cs", "en"))

	r.RegisterValueOverride("k", "v", entities.KeyValueMatch{"never": true})
	assert.True(t, r.Has("k", ""))

	r.RegisterExtension("ext", func(raw string, _ entities.Replacer) string { return raw })
	assert.True(t, r.Has("ext", ""))
}

func TestResolver_ConcurrentUse(t *testing.T) {
	t.Parallel()

	c := newCatalog(t)
	c.AddMessage("en", "k", "value :i")
	r := newResolver(c)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			r.RegisterValueOverride(fmt.Sprintf("k%d", i), "v", nil)
			r.RegisterExtension(fmt.Sprintf("e%d", i), func(raw string, _ entities.Replacer) string { return raw })
		}()
		go func() {
			defer wg.Done()
			got, err := r.Resolve("k", entities.Replacements{"i": i}, "")
			assert.NoError(t, err)
			assert.Equal(t, fmt.Sprintf("value %d", i), got)
		}()
	}
	wg.Wait()
}
