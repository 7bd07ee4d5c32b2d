package lattice

import (
	"fmt"

	"github.com/latticekit/lattice/pkg/schema"
)

// BlockFunc declares attributes against a nested struct definition.
type BlockFunc func(*Definition) error

// Attr is a single entry of a batch declaration.
type Attr struct {
	// Name of the attribute.
	Name string
	// Type is a schema.Type, a string alias ("int", "[string]", ...), or a
	// *Definition.
	Type any
	// Omittable marks the attribute as allowed to be absent from input.
	Omittable bool
}

// Attribute declares a required attribute on the definition.
//
// typ may be a schema.Type, a string alias resolved against the builtin
// table, or another *Definition. Passing nil typ with a block synthesizes an
// anonymous nested struct definition; passing a *Definition with a block
// derives a subclass of it; passing a slice of a struct definition with a
// block derives a new member definition for the slice. Supplying neither a
// type nor a block fails with *MissingTypeError.
func (d *Definition) Attribute(name string, typ any, block ...BlockFunc) error {
	return d.attribute(name, typ, false, block)
}

// OmittableAttribute declares an attribute whose absence from input is not
// an error. Everything else behaves as Attribute.
func (d *Definition) OmittableAttribute(name string, typ any, block ...BlockFunc) error {
	return d.attribute(name, typ, true, block)
}

func (d *Definition) attribute(name string, typ any, omittable bool, blocks []BlockFunc) error {
	t, err := resolveType(typ)
	if err != nil {
		return fmt.Errorf("attribute %q on %s: %w", name, d.name, err)
	}

	var block BlockFunc
	if len(blocks) > 0 {
		block = blocks[0]
	}
	if t == nil && block == nil {
		return &MissingTypeError{Definition: d.name, Attribute: name}
	}
	if block != nil {
		t, err = d.buildNested(name, t, block)
		if err != nil {
			return err
		}
	}

	return d.Attributes(Attr{Name: name, Type: t, Omittable: omittable})
}

// Attributes declares a batch of attributes in order.
//
// A batch name already declared directly on this definition (as opposed to
// inherited from an ancestor) aborts the whole batch with
// *RepeatedAttributeError; overriding an inherited name is accepted and
// keeps the attribute's original position. After merging, the batch is
// propagated to every tracked descendant that has not overridden the name
// itself, so subclasses created before this call stay consistent.
func (d *Definition) Attributes(attrs ...Attr) error {
	batch := make([]schema.Key, 0, len(attrs))
	for _, a := range attrs {
		t, err := resolveType(a.Type)
		if err != nil {
			return fmt.Errorf("attribute %q on %s: %w", a.Name, d.name, err)
		}
		if t == nil {
			return &MissingTypeError{Definition: d.name, Attribute: a.Name}
		}
		batch = append(batch, schema.Key{Name: a.Name, Type: t, Omittable: a.Omittable})
	}

	r := d.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	// Transforms run once, at the declaring definition; propagation passes
	// the finished keys along unchanged.
	applied := make([]schema.Key, len(batch))
	seen := make(map[string]struct{}, len(batch))
	for i, k := range batch {
		k = d.schema.Apply(k)
		if _, dup := seen[k.Name]; dup {
			return &RepeatedAttributeError{Definition: d.name, Attribute: k.Name}
		}
		seen[k.Name] = struct{}{}
		if _, dup := d.declared[k.Name]; dup {
			return &RepeatedAttributeError{Definition: d.name, Attribute: k.Name}
		}
		applied[i] = k
	}

	d.apply(applied, true)
	return nil
}

// apply merges keys into the schema and recursively propagates them to
// descendants that do not own the name. Caller holds the registry lock.
func (d *Definition) apply(keys []schema.Key, direct bool) {
	d.schema = d.schema.Merge(keys)
	if direct {
		for _, k := range keys {
			d.declared[k.Name] = struct{}{}
		}
	}

	for _, child := range d.registry.descendantsOf(d) {
		var subset []schema.Key
		for _, k := range keys {
			if _, owned := child.declared[k.Name]; !owned {
				subset = append(subset, k)
			}
		}
		if len(subset) > 0 {
			child.apply(subset, false)
		}
	}

	if direct {
		d.registry.logger.Debug("attributes declared", "definition", d.name, "count", len(keys))
	}
}

// TransformKeys composes fn onto the schema's key transform. It affects
// attributes declared afterward, never retroactively; declare transforms
// before attributes.
func (d *Definition) TransformKeys(fn func(string) string) {
	d.registry.mu.Lock()
	defer d.registry.mu.Unlock()
	d.schema = d.schema.WithKeyTransform(fn)
}

// TransformTypes composes fn onto the schema's type transform. It affects
// attributes declared afterward, never retroactively.
func (d *Definition) TransformTypes(fn func(schema.Type) schema.Type) {
	d.registry.mu.Lock()
	defer d.registry.mu.Unlock()
	d.schema = d.schema.WithTypeTransform(fn)
}

// Strict makes the definition's schema reject input keys it does not
// declare.
func (d *Definition) Strict() {
	d.registry.mu.Lock()
	defer d.registry.mu.Unlock()
	d.schema = d.schema.Strict()
}

// buildNested synthesizes the struct definition backing a block-declared
// attribute. It is the only place nested definitions are minted at
// declaration time; declarations inside the block never leak into sibling
// attributes because they target the fresh definition only.
func (d *Definition) buildNested(attrName string, base schema.Type, block BlockFunc) (schema.Type, error) {
	nestedName := d.name + "." + attrName

	switch bt := underlyingOrNil(base).(type) {
	case nil:
		nested := d.registry.Define(nestedName)
		if err := block(nested); err != nil {
			return nil, fmt.Errorf("nested attribute %q on %s: %w", attrName, d.name, err)
		}
		return nested, nil

	case *Definition:
		nested := bt.Derive(nestedName)
		if err := block(nested); err != nil {
			return nil, fmt.Errorf("nested attribute %q on %s: %w", attrName, d.name, err)
		}
		return nested, nil

	case *schema.SliceType:
		member, ok := schema.Underlying(bt.Elem()).(*Definition)
		if !ok {
			return nil, fmt.Errorf("attribute %q on %s: slice element %s is not a struct definition", attrName, d.name, bt.Elem().Name())
		}
		derived := member.Derive(nestedName)
		if err := block(derived); err != nil {
			return nil, fmt.Errorf("nested attribute %q on %s: %w", attrName, d.name, err)
		}
		return schema.Slice(derived), nil

	default:
		return nil, fmt.Errorf("attribute %q on %s: cannot attach a block to type %s", attrName, d.name, base.Name())
	}
}

func resolveType(typ any) (schema.Type, error) {
	switch v := typ.(type) {
	case nil:
		return nil, nil
	case *Definition:
		return v, nil
	case string:
		return schema.ParseType(v)
	case schema.Type:
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported type specification %T", typ)
	}
}

func underlyingOrNil(t schema.Type) schema.Type {
	if t == nil {
		return nil
	}
	return schema.Underlying(t)
}
