package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration matches every *ConfigurationError via errors.Is.
	ErrConfiguration = errors.New("configuration error")

	// ErrInvariant matches every *InvariantViolation via errors.Is.
	ErrInvariant = errors.New("invariant violation")

	ErrRunNotFound = errors.New("search run not found")
)

// ConfigurationError reports invalid or inconsistent inputs detected before a search starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration error: %s", e.Reason)
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

func configErrorf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InvariantViolation is an internal consistency failure (e.g. a gap in a leg chain).
// It signals a defect, not a recoverable condition.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string { return "invariant violation: " + e.Reason }

func (e *InvariantViolation) Is(target error) bool { return target == ErrInvariant }

func invariantf(format string, args ...any) error {
	return &InvariantViolation{Reason: fmt.Sprintf(format, args...)}
}
