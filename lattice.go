package lattice

import (
	"io"
	"log/slog"
	"sync"

	"github.com/latticekit/lattice/pkg/schema"
)

// Registry owns struct definitions: it creates them, indexes them by name,
// and keeps the parent→descendant links used to propagate attribute
// declarations to subclasses.
//
// Definition creation and attribute declaration are serialized by a single
// lock; descendants' schemas are rewritten in place during propagation, so
// declaration-time writes must not interleave. Finished instances are
// immutable and safe to share across goroutines without synchronization.
type Registry struct {
	mu       sync.Mutex
	logger   *slog.Logger
	byName   map[string]*Definition
	children map[*Definition][]*Definition
	defs     []*Definition
}

// RegistryOption defines a functional option for configuring a Registry.
type RegistryOption func(*Registry)

// WithLogger sets a custom structured logger for the registry.
func WithLogger(logger *slog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// NewRegistry creates an empty definition registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byName:   make(map[string]*Definition),
		children: make(map[*Definition][]*Definition),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// Define creates a new root struct definition with the given name.
// Defining the same name again replaces the previous entry in name lookups;
// the earlier definition itself keeps working.
func (r *Registry) Define(name string) *Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newDefinition(name, nil, false)
}

// Abstract creates a definition with no attributes that exists only to be
// subclassed. Constructing it directly fails.
func (r *Registry) Abstract(name string) *Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.newDefinition(name, nil, true)
}

// Lookup returns the definition registered under name.
func (r *Registry) Lookup(name string) (*Definition, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.byName[name]
	return d, ok
}

// Definitions returns every definition in creation order.
func (r *Registry) Definitions() []*Definition {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// newDefinition creates and registers a definition. Caller holds r.mu.
func (r *Registry) newDefinition(name string, parent *Definition, abstract bool) *Definition {
	d := &Definition{
		name:     name,
		parent:   parent,
		registry: r,
		schema:   schema.Empty(),
		meta:     map[string]any{},
		declared: map[string]struct{}{},
		abstract: abstract,
	}
	if parent != nil {
		// Schema starts as a direct alias of the parent's snapshot; meta is
		// copied so tagging the child never touches the parent.
		d.schema = parent.schema
		d.meta = copyMeta(parent.meta)
		r.children[parent] = append(r.children[parent], d)
	}
	r.byName[name] = d
	r.defs = append(r.defs, d)
	r.logger.Debug("definition created", "name", name, "parent", parentName(parent), "abstract", abstract)
	return d
}

// descendantsOf returns the direct children of d. Caller holds r.mu.
func (r *Registry) descendantsOf(d *Definition) []*Definition {
	return r.children[d]
}

func parentName(d *Definition) string {
	if d == nil {
		return ""
	}
	return d.name
}
