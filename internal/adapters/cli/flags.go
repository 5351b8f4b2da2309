package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gloss/internal/domain"
	"gloss/internal/domain/entities"
	"gloss/internal/ports/input"
)

// overrideFlags are the per-invocation overrides and extensions.
type overrideFlags struct {
	keyOverrides   []string
	valueOverrides []string
	extensions     []string
	when           []string
}

func (f *overrideFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringArrayVar(&f.keyOverrides, "key-override", nil, "Redirect a key: short=target (repeatable)")
	fl.StringArrayVar(&f.valueOverrides, "value-override", nil, "Replace a key's value: short=value (repeatable)")
	fl.StringArrayVar(&f.extensions, "extend", nil, "Rewrite a key's raw value into a new key: key:from=to (repeatable)")
	fl.StringArrayVar(&f.when, "when", nil, "Only apply the overrides when a replacement matches: name=value (repeatable, any match)")
}

// apply registers the flags on t.
func (f *overrideFlags) apply(t input.TranslatorUseCase) error {
	condition, err := f.condition()
	if err != nil {
		return err
	}

	for _, s := range f.keyOverrides {
		short, target, err := splitPair(s, "--key-override")
		if err != nil {
			return err
		}
		t.RegisterKeyOverride(short, target, condition)
	}

	values := make(map[string]string, len(f.valueOverrides))
	for _, s := range f.valueOverrides {
		short, value, err := splitPair(s, "--value-override")
		if err != nil {
			return err
		}
		values[short] = value
	}
	t.RegisterValueOverrides(values, condition)

	for _, s := range f.extensions {
		key, rest, ok := strings.Cut(s, ":")
		from, to, ok2 := strings.Cut(rest, "=")
		if !ok || !ok2 || key == "" || from == "" {
			return fmt.Errorf("--extend %q: want key:from=to", s)
		}
		t.RegisterExtension(key, literalExtension(from, to))
	}
	return nil
}

func (f *overrideFlags) condition() (entities.Condition, error) {
	if len(f.when) == 0 {
		return entities.Always{}, nil
	}
	match, err := domain.ParseReplacements(f.when)
	if err != nil {
		return nil, fmt.Errorf("--when: %w", err)
	}
	return entities.KeyValueMatch(match), nil
}

func literalExtension(from, to string) entities.Transform {
	return func(raw string, replace entities.Replacer) string {
		return replace(raw, map[string]string{from: to})
	}
}

func splitPair(s, flag string) (string, string, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("%s %q: want name=value", flag, s)
	}
	return name, value, nil
}
