package entities

import "time"

// Message is a single catalog entry for one locale.
type Message struct {
	Locale    string
	Key       string
	Value     string
	UpdatedAt time.Time
}

// LineFunc renders a catalog line from the replacements of the lookup.
type LineFunc func(replacements Replacements) string

// Line is a raw catalog entry: a template, or a function producing one.
type Line struct {
	Template string
	Func     LineFunc
}

// Render returns the line's template. Function lines are called with
// replacements first.
func (l Line) Render(replacements Replacements) string {
	if l.Func != nil {
		return l.Func(replacements)
	}
	return l.Template
}
