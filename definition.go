package lattice

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/latticekit/lattice/pkg/schema"
)

// Definition describes the shape and coercion rules of one struct type.
// It owns exactly one schema snapshot, an independent meta map, and a
// reference to the definition it derives from, if any.
//
// Definitions are process-lifetime values created through a Registry; they
// implement schema.Type, so a definition can be used directly as the type
// of another definition's attribute.
type Definition struct {
	name     string
	parent   *Definition
	registry *Registry
	schema   *schema.Schema
	meta     map[string]any
	declared map[string]struct{} // names declared directly on this definition
	abstract bool
}

// Name returns the definition's name.
func (d *Definition) Name() string { return d.name }

// Parent returns the definition this one derives from, or nil.
func (d *Definition) Parent() *Definition { return d.parent }

// Abstract reports whether the definition exists only to be subclassed.
func (d *Definition) Abstract() bool { return d.abstract }

// Schema returns the current schema snapshot.
func (d *Definition) Schema() *schema.Schema {
	d.registry.mu.Lock()
	defer d.registry.mu.Unlock()
	return d.schema
}

// Meta returns a copy of the definition's meta map.
func (d *Definition) Meta() map[string]any {
	d.registry.mu.Lock()
	defer d.registry.mu.Unlock()
	return copyMeta(d.meta)
}

// HasAttribute reports whether the definition declares or inherits the
// given attribute name.
func (d *Definition) HasAttribute(name string) bool {
	return d.Schema().Has(name)
}

// AttributeNames returns the attribute names in declaration order.
func (d *Definition) AttributeNames() []string {
	return d.Schema().KeyNames()
}

// Derive creates a subclass of d: the child starts with the parent's
// schema and a snapshot of its meta, and is tracked so attributes later
// declared on d (or any ancestor) propagate to it.
func (d *Definition) Derive(name string) *Definition {
	d.registry.mu.Lock()
	defer d.registry.mu.Unlock()
	return d.registry.newDefinition(name, d, false)
}

// WithMeta returns a definition equal to d but carrying the extra tags
// merged over d's meta. The receiver is never mutated. Empty extra returns
// d itself, avoiding trivial derived copies. The returned definition is
// tracked as a descendant, so attribute propagation still reaches it.
func (d *Definition) WithMeta(extra map[string]any) *Definition {
	if len(extra) == 0 {
		return d
	}

	d.registry.mu.Lock()
	defer d.registry.mu.Unlock()

	tagged := d.registry.newDefinition(d.name, d, d.abstract)
	if err := mergo.Merge(&tagged.meta, extra, mergo.WithOverride); err != nil {
		// mergo only fails on nil/non-map destinations, which newDefinition rules out.
		panic(fmt.Sprintf("lattice: merging meta for %s: %v", d.name, err))
	}
	return tagged
}

// --- schema.Type conformance ---

// Validate reports whether value is an instance of d or of a definition
// derived from d.
func (d *Definition) Validate(value any) error {
	inst, ok := value.(*Instance)
	if !ok {
		return fmt.Errorf("expected %s instance, got %T", d.name, value)
	}
	if !d.acceptsDefinition(inst.def) {
		return fmt.Errorf("expected %s instance, got %s", d.name, inst.def.name)
	}
	return nil
}

// Coerce turns value into an instance of d via the construction pipeline.
func (d *Definition) Coerce(value any) (any, error) {
	return d.Construct(value)
}

// Constrained reports whether the type constrains its values. Struct
// definitions always do.
func (d *Definition) Constrained() bool { return true }

// Optional reports whether absence is acceptable. Struct definitions are
// never optional; omittability is a property of the enclosing key.
func (d *Definition) Optional() bool { return false }

// acceptsDefinition reports whether other is d or derives from d.
func (d *Definition) acceptsDefinition(other *Definition) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == d {
			return true
		}
	}
	return false
}

func copyMeta(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}
