// Package schema provides the type system underneath lattice struct
// definitions: a small set of composable value types and an ordered,
// immutable key schema that validates and coerces loosely-typed input.
//
// Types implement Validate; types that can convert input into a canonical
// representation additionally implement Coercer. Built-in types (string,
// int, float, bool) are resolvable by string alias, including slice
// aliases like "[string]":
//
//	t, err := schema.ParseType("[int]")
//
// A Schema is an ordered sequence of keys. It is a value: Merge,
// WithKeyTransform, WithTypeTransform and Strict all return a new Schema
// and never mutate the receiver, so snapshots can be shared freely.
//
//	s := schema.Empty().Merge([]schema.Key{
//	    {Name: "title", Type: schema.String()},
//	    {Name: "pages", Type: schema.Int(), Omittable: true},
//	})
//	attrs, err := s.Coerce(map[string]any{"title": "Dune"})
//
// Coerce reports failures as *ValidationError values carrying one of the
// sentinel kinds ErrSchemaMismatch, ErrMissingKey or ErrUnknownKey, so
// callers can branch with errors.Is.
//
// This package has no knowledge of struct definitions; lattice definitions
// plug into it by implementing Type (and Coercer) themselves.
package schema
