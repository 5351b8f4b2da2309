package entities

import "maps"

// Replacements maps placeholder names to substitution values.
type Replacements map[string]any

// With returns a copy of r with key set to value. r is left untouched.
func (r Replacements) With(key string, value any) Replacements {
	out := make(Replacements, len(r)+1)
	maps.Copy(out, r)
	out[key] = value
	return out
}
