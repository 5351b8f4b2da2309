package entities

// Condition decides whether an override applies to a set of replacements.
// It is one of Always, KeyValueMatch or Predicate; a nil Condition behaves like Always.
type Condition interface {
	condition()
}

// Always matches every replacement map.
type Always struct{}

// KeyValueMatch matches when at least one of its keys is present in the
// replacement map with an equal value.
type KeyValueMatch map[string]any

// Predicate is an arbitrary match function over the replacement map.
type Predicate func(data Replacements) bool

func (Always) condition()        {}
func (KeyValueMatch) condition() {}
func (Predicate) condition()     {}
