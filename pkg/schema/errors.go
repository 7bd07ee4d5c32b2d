package schema

import (
	"errors"
	"fmt"
)

// Sentinel kinds reported by Schema.Coerce. Callers branch with errors.Is.
var (
	// ErrSchemaMismatch is reported when a value fails its type check.
	ErrSchemaMismatch = errors.New("value does not match schema")
	// ErrMissingKey is reported when a required key is absent from input.
	ErrMissingKey = errors.New("missing required key")
	// ErrUnknownKey is reported by strict schemas for undeclared input keys.
	ErrUnknownKey = errors.New("unknown key")
	// ErrUnknownAlias is reported by ParseType for unregistered identifiers.
	ErrUnknownAlias = errors.New("unknown type alias")
)

// ValidationError represents a single key validation failure.
type ValidationError struct {
	Kind   error  // one of the sentinel kinds above
	Key    string // attribute name
	Reason string // human-readable reason for failure
	Value  any    // the value that failed validation, nil if absent
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("key %q: %s", e.Key, e.Kind)
	}
	return fmt.Sprintf("key %q: %s", e.Key, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:", len(e.Errors))
	for _, err := range e.Errors {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error { return e.Errors }

// ValidationErrors returns all validation failures if err aggregates any.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
