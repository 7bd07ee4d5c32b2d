package schema

import "fmt"

// UnionType accepts values conforming to either of two types.
// It is the generic combinator; struct-on-struct unions are composed at the
// definition level instead.
type UnionType struct {
	left  Type
	right Type
}

// Union combines two types into a tagged union.
func Union(left, right Type) *UnionType {
	return &UnionType{left: left, right: right}
}

func (t *UnionType) Name() string {
	return fmt.Sprintf("%s | %s", t.left.Name(), t.right.Name())
}

// Left returns the first branch.
func (t *UnionType) Left() Type { return t.left }

// Right returns the second branch.
func (t *UnionType) Right() Type { return t.right }

func (t *UnionType) Validate(value any) error {
	if t.left.Validate(value) == nil {
		return nil
	}
	if t.right.Validate(value) == nil {
		return nil
	}
	return fmt.Errorf("value %v (%T) matches neither %s nor %s", value, value, t.left.Name(), t.right.Name())
}

// Coerce tries the left branch first, then the right.
func (t *UnionType) Coerce(value any) (any, error) {
	if out, err := CoerceValue(t.left, value); err == nil {
		return out, nil
	}
	out, err := CoerceValue(t.right, value)
	if err != nil {
		return nil, fmt.Errorf("value %v (%T) matches neither %s nor %s", value, value, t.left.Name(), t.right.Name())
	}
	return out, nil
}
