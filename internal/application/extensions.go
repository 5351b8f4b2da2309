package application

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"gloss/internal/domain/entities"
)

// ExtensionRegistry holds ordered post-processing transforms per message key.
type ExtensionRegistry struct {
	mu    sync.RWMutex
	rules map[string][]entities.ExtensionRule
}

func NewExtensionRegistry() *ExtensionRegistry {
	return &ExtensionRegistry{rules: make(map[string][]entities.ExtensionRule)}
}

// RegisterExtension appends transform to the chain for key. Nil transforms are ignored.
func (r *ExtensionRegistry) RegisterExtension(key string, transform entities.Transform) {
	if transform == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[key] = append(r.rules[key], entities.ExtensionRule{Transform: transform})
}

func (r *ExtensionRegistry) HasExtensions(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules[key]) > 0
}

// ApplyExtensions folds the chain for key over raw, left to right.
func (r *ExtensionRegistry) ApplyExtensions(key, raw string) string {
	r.mu.RLock()
	chain := r.rules[key]
	r.mu.RUnlock()

	out := raw
	for _, rule := range chain {
		out = rule.Transform(out, ReplaceLiteral)
	}
	return out
}

// ReplaceLiteral substitutes every occurrence of each key of substitutions in s
// with its value. Longer keys win over their prefixes and replaced text is
// never rescanned.
func ReplaceLiteral(s string, substitutions map[string]string) string {
	if len(substitutions) == 0 || s == "" {
		return s
	}

	from := make([]string, 0, len(substitutions))
	for k := range substitutions {
		if k != "" {
			from = append(from, k)
		}
	}
	slices.SortFunc(from, func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	pairs := make([]string, 0, len(from)*2)
	for _, k := range from {
		pairs = append(pairs, k, substitutions[k])
	}
	return strings.NewReplacer(pairs...).Replace(s)
}
