// Package result provides a minimal success/failure wrapper for fallible
// operations that should not surface errors, such as lattice's TryConstruct.
package result

// Result holds either a value or the original input plus a failure message.
type Result[T any] struct {
	value   T
	input   any
	message string
	ok      bool
}

// Success wraps a value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Failure wraps the original input and a message describing the failure.
func Failure[T any](input any, message string) Result[T] {
	return Result[T]{input: input, message: message}
}

// Ok reports whether the result holds a value.
func (r Result[T]) Ok() bool { return r.ok }

// Value returns the held value and whether one is present.
func (r Result[T]) Value() (T, bool) { return r.value, r.ok }

// Input returns the original input of a failed operation, nil on success.
func (r Result[T]) Input() any { return r.input }

// Message returns the failure message, empty on success.
func (r Result[T]) Message() string { return r.message }
