package schema

// Key is a single named, typed attribute entry of a Schema.
type Key struct {
	Name      string
	Type      Type
	Omittable bool // absence from input is not an error
}

// Nested returns the key's nested Schema when its type carries one
// (struct definitions do), and false otherwise.
func (k Key) Nested() (*Schema, bool) {
	if p, ok := Underlying(k.Type).(interface{ Schema() *Schema }); ok {
		return p.Schema(), true
	}
	return nil, false
}

// Schema is an ordered, immutable sequence of attribute keys.
// All modifying operations return a new Schema; snapshots can be shared
// freely without synchronization.
type Schema struct {
	keys  []Key
	index map[string]int
	names []string // memoized per snapshot

	keyTransform  func(string) string
	typeTransform func(Type) Type
	strict        bool
}

// Empty returns a Schema with no keys and identity transforms.
func Empty() *Schema {
	return &Schema{index: map[string]int{}}
}

func (s *Schema) snapshot(keys []Key) *Schema {
	next := &Schema{
		keys:          keys,
		index:         make(map[string]int, len(keys)),
		names:         make([]string, len(keys)),
		keyTransform:  s.keyTransform,
		typeTransform: s.typeTransform,
		strict:        s.strict,
	}
	for i, k := range keys {
		next.index[k.Name] = i
		next.names[i] = k.Name
	}
	return next
}

// Merge returns a new Schema holding the receiver's keys followed by the
// additions not already present by name. An addition whose name already
// exists replaces the existing entry in place, preserving its position.
//
// Merge does not apply the schema's transforms; callers that want them
// run additions through Apply first. Duplicate detection between sibling
// additions is the declaring side's responsibility.
func (s *Schema) Merge(additions []Key) *Schema {
	keys := make([]Key, len(s.keys), len(s.keys)+len(additions))
	copy(keys, s.keys)

	for _, k := range additions {
		if i, ok := s.index[k.Name]; ok {
			keys[i] = k
			continue
		}
		keys = append(keys, k)
	}
	return s.snapshot(keys)
}

// Apply runs the schema's key and type transforms over a single key.
func (s *Schema) Apply(k Key) Key {
	if s.keyTransform != nil {
		k.Name = s.keyTransform(k.Name)
	}
	if s.typeTransform != nil {
		k.Type = s.typeTransform(k.Type)
	}
	return k
}

// WithKeyTransform returns a new Schema whose key transform is fn composed
// onto the existing one. It affects keys applied afterward, not
// retroactively.
func (s *Schema) WithKeyTransform(fn func(string) string) *Schema {
	next := s.snapshot(s.keys)
	prev := s.keyTransform
	if prev == nil {
		next.keyTransform = fn
	} else {
		next.keyTransform = func(name string) string { return fn(prev(name)) }
	}
	return next
}

// WithTypeTransform returns a new Schema whose type transform is fn
// composed onto the existing one. It affects keys applied afterward, not
// retroactively.
func (s *Schema) WithTypeTransform(fn func(Type) Type) *Schema {
	next := s.snapshot(s.keys)
	prev := s.typeTransform
	if prev == nil {
		next.typeTransform = fn
	} else {
		next.typeTransform = func(t Type) Type { return fn(prev(t)) }
	}
	return next
}

// Strict returns a new Schema that rejects input keys it does not declare.
func (s *Schema) Strict() *Schema {
	next := s.snapshot(s.keys)
	next.strict = true
	return next
}

// IsStrict reports whether undeclared input keys are rejected.
func (s *Schema) IsStrict() bool { return s.strict }

// Len returns the number of declared keys.
func (s *Schema) Len() int { return len(s.keys) }

// Keys returns the attribute entries in declaration order.
func (s *Schema) Keys() []Key {
	out := make([]Key, len(s.keys))
	copy(out, s.keys)
	return out
}

// Key returns the entry with the given name.
func (s *Schema) Key(name string) (Key, bool) {
	i, ok := s.index[name]
	if !ok {
		return Key{}, false
	}
	return s.keys[i], true
}

// Has reports whether the schema declares the given name.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// KeyNames returns the attribute names in declaration order.
func (s *Schema) KeyNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Coerce validates and converts input into an attribute map.
// Required keys must be present; omittable keys are skipped when absent.
// In strict mode, input keys the schema does not declare are rejected.
// All failures are collected; a single failure is returned as a
// *ValidationError, several as an *AggregateError.
func (s *Schema) Coerce(input map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(s.keys))
	var errs []error

	for _, k := range s.keys {
		value, ok := input[k.Name]
		if !ok {
			if k.Omittable {
				continue
			}
			errs = append(errs, &ValidationError{Kind: ErrMissingKey, Key: k.Name})
			continue
		}

		coerced, err := CoerceValue(k.Type, value)
		if err != nil {
			errs = append(errs, &ValidationError{
				Kind:   ErrSchemaMismatch,
				Key:    k.Name,
				Reason: err.Error(),
				Value:  value,
			})
			continue
		}
		out[k.Name] = coerced
	}

	if s.strict {
		for name := range input {
			if _, ok := s.index[name]; !ok {
				errs = append(errs, &ValidationError{Kind: ErrUnknownKey, Key: name, Value: input[name]})
			}
		}
	}

	switch len(errs) {
	case 0:
		return out, nil
	case 1:
		return nil, errs[0]
	default:
		return nil, &AggregateError{Errors: errs}
	}
}
