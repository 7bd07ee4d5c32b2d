package lattice

import (
	"fmt"
)

// SumType is a tagged union of two struct definitions. It accepts a value
// that is an instance of either branch. Combining a struct definition with
// a non-struct type is the job of schema.Union instead.
type SumType struct {
	left  *Definition
	right *Definition
}

// Sum combines two struct definitions into a union type.
func Sum(left, right *Definition) *SumType {
	return &SumType{left: left, right: right}
}

// Left returns the first branch.
func (s *SumType) Left() *Definition { return s.left }

// Right returns the second branch.
func (s *SumType) Right() *Definition { return s.right }

func (s *SumType) Name() string {
	return fmt.Sprintf("%s | %s", s.left.name, s.right.name)
}

// Accepts reports whether value is an instance of either branch.
func (s *SumType) Accepts(value any) bool {
	return s.Validate(value) == nil
}

func (s *SumType) Validate(value any) error {
	if s.left.Validate(value) == nil {
		return nil
	}
	if s.right.Validate(value) == nil {
		return nil
	}
	return fmt.Errorf("value %v (%T) is neither %s nor %s", value, value, s.left.name, s.right.name)
}

// Coerce passes instances of either branch through unchanged; raw input is
// constructed against the left branch first, then the right.
func (s *SumType) Coerce(value any) (any, error) {
	if inst, ok := value.(*Instance); ok {
		if err := s.Validate(inst); err != nil {
			return nil, err
		}
		return inst, nil
	}
	if inst, err := s.left.Construct(value); err == nil {
		return inst, nil
	}
	inst, err := s.right.Construct(value)
	if err != nil {
		return nil, fmt.Errorf("value does not construct as %s or %s: %w", s.left.name, s.right.name, err)
	}
	return inst, nil
}
