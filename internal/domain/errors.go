package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors.
var (
	ErrCyclicOverride = errors.New("gloss: override chain exceeds maximum depth")
	ErrInvalidCount   = errors.New("gloss: count must be a number or a collection")
	ErrEmptyKey       = errors.New("gloss: key cannot be empty")
	ErrUnknownKey     = errors.New("gloss: unknown translation key")

	ErrInvalidReplacement = errors.New("gloss: replacement must be name=value")
)

// CyclicOverrideError reports a resolution that recursed past the configured
// depth, usually because of a key override or extension cycle.
type CyclicOverrideError struct {
	Key   string
	Depth int
	Trail []string
}

func (e *CyclicOverrideError) Error() string {
	if len(e.Trail) == 0 {
		return fmt.Sprintf("%s: key %q at depth %d", ErrCyclicOverride, e.Key, e.Depth)
	}
	return fmt.Sprintf("%s: key %q at depth %d (%s)", ErrCyclicOverride, e.Key, e.Depth, strings.Join(e.Trail, " -> "))
}

func (e *CyclicOverrideError) Is(target error) bool {
	return target == ErrCyclicOverride
}

// Code returns a stable identifier for a domain error, or "" when err is not
// one of ours.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCyclicOverride):
		return "cyclic_override"
	case errors.Is(err, ErrInvalidCount):
		return "invalid_count"
	case errors.Is(err, ErrEmptyKey):
		return "empty_key"
	case errors.Is(err, ErrUnknownKey):
		return "unknown_key"
	case errors.Is(err, ErrInvalidReplacement):
		return "invalid_replacement"
	default:
		return ""
	}
}
