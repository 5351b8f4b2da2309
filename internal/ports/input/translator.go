package input

import "gloss/internal/domain/entities"

// TranslatorUseCase is the override-aware translation surface used by adapters.
type TranslatorUseCase interface {
	RegisterKeyOverride(shortKey, newKey string, condition entities.Condition)
	RegisterValueOverride(shortKey, value string, condition entities.Condition)
	RegisterValueOverrides(values map[string]string, condition entities.Condition)
	RegisterExtension(key string, transform entities.Transform)
	Resolve(key string, replacements entities.Replacements, locale string) (string, error)
	Choice(key string, count any, replacements entities.Replacements, locale string) (string, error)
	Has(key, locale string) bool
}
