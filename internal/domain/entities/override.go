package entities

// OverrideRule is a conditional override registered for a short key.
// Target is either a redirect key or a literal replacement value, depending
// on the registry list the rule lives in.
type OverrideRule struct {
	Condition Condition
	Target    string
}

// Replacer performs literal substring substitution on s.
type Replacer func(s string, substitutions map[string]string) string

// Transform post-processes the raw value of a message. Its output becomes the
// key that is resolved next.
type Transform func(raw string, replace Replacer) string

// ExtensionRule is a registered Transform.
type ExtensionRule struct {
	Transform Transform
}
