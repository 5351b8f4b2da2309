package domain

import (
	"reflect"

	"github.com/spf13/cast"

	"gloss/internal/domain/entities"
)

// Matches reports whether condition c applies to data.
//
// A KeyValueMatch only needs one shared key with an equal value; values are
// compared by their string form, so 1 and "1" are equal. Values without a
// string form (structs, slices, maps) must be deeply equal.
func Matches(c entities.Condition, data entities.Replacements) bool {
	switch c := c.(type) {
	case nil, entities.Always:
		return true
	case entities.Predicate:
		if c == nil {
			return true
		}
		return c(data)
	case entities.KeyValueMatch:
		for key, want := range c {
			got, ok := data[key]
			if ok && equalValues(got, want) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func equalValues(got, want any) bool {
	g, gerr := cast.ToStringE(got)
	w, werr := cast.ToStringE(want)
	if gerr != nil || werr != nil {
		return reflect.DeepEqual(got, want)
	}
	return g == w
}
