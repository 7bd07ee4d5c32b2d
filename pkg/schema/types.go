package schema

import (
	"fmt"
	"reflect"
)

// Type defines the contract for attribute validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// Coercer is implemented by types that can convert input into a canonical
// representation (e.g. a JSON float64 into an int64, or a raw map into a
// struct instance). Types without a Coercer are validated and passed through.
type Coercer interface {
	Coerce(value any) (any, error)
}

// CoerceValue converts value through t. If t implements Coercer the
// conversion result is returned; otherwise the value is validated and
// returned unchanged.
func CoerceValue(t Type, value any) (any, error) {
	if c, ok := t.(Coercer); ok {
		return c.Coerce(value)
	}
	if err := t.Validate(value); err != nil {
		return nil, err
	}
	return value, nil
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	_, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		// Accept floats that are whole numbers (from JSON unmarshaling)
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// Coerce normalizes whole-number floats (JSON numbers) to int64.
func (t *IntType) Coerce(value any) (any, error) {
	if err := t.Validate(value); err != nil {
		return nil, err
	}
	if f, ok := value.(float64); ok {
		return int64(f), nil
	}
	return value, nil
}

// FloatType validates floating-point values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value any) error {
	switch value.(type) {
	case float32, float64, int, int8, int16, int32, int64:
		return nil
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
}

// BoolType validates boolean values.
type BoolType struct{}

func (t *BoolType) Name() string { return "bool" }

func (t *BoolType) Validate(value any) error {
	_, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

// Elem returns the element type of the slice.
func (t *SliceType) Elem() Type { return t.elemType }

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}

	for i := 0; i < rv.Len(); i++ {
		elem := rv.Index(i).Interface()
		if err := t.elemType.Validate(elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// Coerce converts every element through the element type. The result is
// always a []any regardless of the input slice's concrete type.
func (t *SliceType) Coerce(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("expected slice, got %T", value)
	}

	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		elem, err := CoerceValue(t.elemType, rv.Index(i).Interface())
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = elem
	}
	return out, nil
}

// MapType validates maps with typed keys and values.
type MapType struct {
	keyType   Type
	valueType Type
}

func (t *MapType) Name() string {
	return fmt.Sprintf("map[%s]%s", t.keyType.Name(), t.valueType.Name())
}

func (t *MapType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map {
		return fmt.Errorf("expected map, got %T", value)
	}

	for _, k := range rv.MapKeys() {
		if err := t.keyType.Validate(k.Interface()); err != nil {
			return fmt.Errorf("key %v: %w", k.Interface(), err)
		}
		if err := t.valueType.Validate(rv.MapIndex(k).Interface()); err != nil {
			return fmt.Errorf("value for key %v: %w", k.Interface(), err)
		}
	}
	return nil
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// MetaType decorates another type with metadata tags without mutating it.
type MetaType struct {
	inner Type
	meta  map[string]any
}

func (t *MetaType) Name() string { return t.inner.Name() }

func (t *MetaType) Validate(value any) error { return t.inner.Validate(value) }

func (t *MetaType) Coerce(value any) (any, error) { return CoerceValue(t.inner, value) }

// Meta returns the tags attached to this type.
func (t *MetaType) Meta() map[string]any {
	out := make(map[string]any, len(t.meta))
	for k, v := range t.meta {
		out[k] = v
	}
	return out
}

// WithTypeMeta returns a copy of t carrying the given tags. Tagging an
// already-tagged type merges the tag sets; the original type is untouched.
func WithTypeMeta(t Type, tags map[string]any) Type {
	merged := make(map[string]any)
	if mt, ok := t.(*MetaType); ok {
		for k, v := range mt.meta {
			merged[k] = v
		}
		t = mt.inner
	}
	for k, v := range tags {
		merged[k] = v
	}
	return &MetaType{inner: t, meta: merged}
}

// TypeMeta returns the tags attached to t, or nil for untagged types.
func TypeMeta(t Type) map[string]any {
	if mt, ok := t.(*MetaType); ok {
		return mt.Meta()
	}
	return nil
}

// Underlying strips metadata decoration and returns the bare type.
func Underlying(t Type) Type {
	for {
		mt, ok := t.(*MetaType)
		if !ok {
			return t
		}
		t = mt.inner
	}
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Bool creates a boolean type validator.
func Bool() Type { return &BoolType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) *SliceType {
	return &SliceType{elemType: elemType}
}

// Map creates a map type validator with the given key and value types.
func Map(keyType, valueType Type) Type {
	return &MapType{keyType: keyType, valueType: valueType}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}
