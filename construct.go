package lattice

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/latticekit/lattice/pkg/result"
	"github.com/latticekit/lattice/pkg/schema"
)

// Instance is a validated struct value bound to its definition.
// It is immutable after construction and safe to share across goroutines.
type Instance struct {
	def   *Definition
	attrs map[string]any
}

// Definition returns the struct definition the instance was built from.
func (i *Instance) Definition() *Definition { return i.def }

// Get returns the value stored under the attribute name.
func (i *Instance) Get(name string) (any, bool) {
	v, ok := i.attrs[name]
	return v, ok
}

// Attributes returns a copy of the attribute map.
func (i *Instance) Attributes() map[string]any {
	out := make(map[string]any, len(i.attrs))
	for k, v := range i.attrs {
		out[k] = v
	}
	return out
}

// MarshalJSON serializes the attribute map; nested instances serialize
// recursively.
func (i *Instance) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.attrs)
}

func (i *Instance) String() string {
	names := make([]string, 0, len(i.attrs))
	for name := range i.attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(i.def.name)
	b.WriteByte('{')
	for n, name := range names {
		if n > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", name, i.attrs[name])
	}
	b.WriteByte('}')
	return b.String()
}

// Construct turns raw input into a validated instance of the definition.
//
// An input that already is an instance of the definition (or of a
// definition derived from it) is returned unchanged without re-validation.
// A nil input constructs from DefaultAttributes. Map input is coerced
// directly; any other Go value (a struct, a map with non-string keys) is
// first normalized into a key/value map. Every validation failure comes
// back as a *ConstructionError wrapping the cause.
func (d *Definition) Construct(input any) (*Instance, error) {
	if d.abstract {
		return nil, &ConstructionError{Definition: d.name, Err: ErrAbstractDefinition}
	}

	if inst, ok := input.(*Instance); ok {
		if d.acceptsDefinition(inst.def) {
			return inst, nil
		}
		// An instance of an unrelated definition is re-coerced from its
		// attribute map.
		input = inst.Attributes()
	}

	values, err := normalizeInput(input)
	if err != nil {
		return nil, &ConstructionError{Definition: d.name, Err: err}
	}

	snapshot := d.Schema()

	// Required struct-typed attributes absent from input fall back to their
	// recursively computed default maps, so a definition whose nested
	// attributes are all omittable constructs from nothing. Omittable
	// attributes stay absent; absence is never an error for them.
	for name, nested := range d.defaultAttributes(snapshot, map[*Definition]struct{}{d: {}}) {
		if _, present := values[name]; !present {
			values[name] = nested
		}
	}

	attrs, err := snapshot.Coerce(values)
	if err != nil {
		return nil, &ConstructionError{Definition: d.name, Err: err}
	}

	return &Instance{def: d, attrs: attrs}, nil
}

// TryConstruct attempts Construct and never returns an error: on failure
// the result wraps the original input and the failure message. An optional
// handler transforms the error into the stored message.
func (d *Definition) TryConstruct(input any, handler ...func(error) string) result.Result[*Instance] {
	inst, err := d.Construct(input)
	if err != nil {
		msg := err.Error()
		if len(handler) > 0 {
			msg = handler[0](err)
		}
		return result.Failure[*Instance](input, msg)
	}
	return result.Success(inst)
}

// DefaultAttributes recursively computes {name → nested default map} for
// every required attribute whose type is itself a struct definition.
// Omittable attributes are excluded: their absence needs no substitute.
// Non-struct attributes are omitted entirely; their defaults, if any, are
// resolved by the type system during coercion.
func (d *Definition) DefaultAttributes() map[string]any {
	return d.defaultAttributes(d.Schema(), map[*Definition]struct{}{d: {}})
}

// defaultAttributes walks required struct-typed keys. seen holds the
// definitions on the current recursion path; a self-referential definition
// contributes no default for the cycling key, so the walk terminates and
// coercion reports the key as missing.
func (d *Definition) defaultAttributes(s *schema.Schema, seen map[*Definition]struct{}) map[string]any {
	out := map[string]any{}
	for _, k := range s.Keys() {
		if k.Omittable {
			continue
		}
		nested, ok := schema.Underlying(k.Type).(*Definition)
		if !ok {
			continue
		}
		if _, cycling := seen[nested]; cycling {
			continue
		}
		seen[nested] = struct{}{}
		out[k.Name] = nested.defaultAttributes(nested.Schema(), seen)
		delete(seen, nested)
	}
	return out
}

// Constructor wraps a definition with a pre-construction transform: the
// returned function feeds fn's output into the standard construction
// pipeline. A transform failure is reported as a *ConstructionError.
func Constructor(d *Definition, fn func(any) (any, error)) func(any) (*Instance, error) {
	return func(input any) (*Instance, error) {
		transformed, err := fn(input)
		if err != nil {
			return nil, &ConstructionError{Definition: d.Name(), Err: err}
		}
		return d.Construct(transformed)
	}
}

// normalizeInput flattens arbitrary input into the key/value map the schema
// coerces. Maps pass through copied; everything else is decoded field by
// field.
func normalizeInput(input any) (map[string]any, error) {
	switch v := input.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = val
		}
		return out, nil
	default:
		var out map[string]any
		if err := mapstructure.Decode(input, &out); err != nil {
			return nil, fmt.Errorf("cannot use %T as attribute input: %w", input, err)
		}
		return out, nil
	}
}
