package application

import (
	"slices"
	"sync"

	"gloss/internal/domain"
	"gloss/internal/domain/entities"
)

// OverrideRegistry holds key redirections and value replacements per short key.
// Rules are only ever appended; the first matching rule in registration order wins.
type OverrideRegistry struct {
	mu     sync.RWMutex
	keys   map[string][]entities.OverrideRule
	values map[string][]entities.OverrideRule
}

func NewOverrideRegistry() *OverrideRegistry {
	return &OverrideRegistry{
		keys:   make(map[string][]entities.OverrideRule),
		values: make(map[string][]entities.OverrideRule),
	}
}

// RegisterKeyOverride redirects shortKey to newKey when condition matches.
func (r *OverrideRegistry) RegisterKeyOverride(shortKey, newKey string, condition entities.Condition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[shortKey] = append(r.keys[shortKey], entities.OverrideRule{Condition: condition, Target: newKey})
}

// RegisterValueOverride replaces the value of shortKey when condition matches.
func (r *OverrideRegistry) RegisterValueOverride(shortKey, value string, condition entities.Condition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[shortKey] = append(r.values[shortKey], entities.OverrideRule{Condition: condition, Target: value})
}

// RegisterValueOverrides registers one value override per entry, all sharing condition.
// Entries are registered in key order.
func (r *OverrideRegistry) RegisterValueOverrides(values map[string]string, condition entities.Condition) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		r.RegisterValueOverride(k, values[k], condition)
	}
}

// LookupKeyOverride returns the redirect target of the first key override
// for shortKey whose condition matches data.
func (r *OverrideRegistry) LookupKeyOverride(shortKey string, data entities.Replacements) (string, bool) {
	return firstMatch(r.rules(r.keys, shortKey), data)
}

// LookupValueOverride returns the value of the first value override for
// shortKey whose condition matches data.
func (r *OverrideRegistry) LookupValueOverride(shortKey string, data entities.Replacements) (string, bool) {
	return firstMatch(r.rules(r.values, shortKey), data)
}

func (r *OverrideRegistry) hasAny(shortKey string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.keys[shortKey]) > 0 || len(r.values[shortKey]) > 0
}

// rules returns the current rule slice for key. The registry never mutates
// elements in place, so the returned slice is safe to read without the lock.
func (r *OverrideRegistry) rules(set map[string][]entities.OverrideRule, key string) []entities.OverrideRule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return set[key]
}

func firstMatch(rules []entities.OverrideRule, data entities.Replacements) (string, bool) {
	for _, rule := range rules {
		if domain.Matches(rule.Condition, data) {
			return rule.Target, true
		}
	}
	return "", false
}
