package lattice

import (
	"errors"
	"fmt"
)

// ErrAbstractDefinition is returned when an abstract definition is
// constructed directly.
var ErrAbstractDefinition = errors.New("abstract definition cannot be constructed")

// RepeatedAttributeError reports a declaration of an attribute name already
// fixed at the same definition level. Overriding a name inherited from an
// ancestor is not an error; re-declaring one declared directly on the
// definition is. Declaration errors indicate a defect in the definition
// itself and have no recovery path.
type RepeatedAttributeError struct {
	Definition string
	Attribute  string
}

func (e *RepeatedAttributeError) Error() string {
	return fmt.Sprintf("attribute %q already declared on %s", e.Attribute, e.Definition)
}

// MissingTypeError reports an attribute declared with neither a type nor a
// nested block.
type MissingTypeError struct {
	Definition string
	Attribute  string
}

func (e *MissingTypeError) Error() string {
	return fmt.Sprintf("attribute %q on %s: no type or nested block given", e.Attribute, e.Definition)
}

// ConstructionError normalizes any validation or coercion failure during
// instantiation into a single error carrying the definition's identity.
// The underlying cause is reachable through Unwrap; type-system error kinds
// never surface past it otherwise.
type ConstructionError struct {
	Definition string
	Err        error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("cannot construct %s: %v", e.Definition, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }
