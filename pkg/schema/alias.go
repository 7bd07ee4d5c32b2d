package schema

import (
	"fmt"
	"sync"
)

// builtinAliases is the lookup table from identifier to type factory.
// Populated once here; extended at runtime via RegisterType.
var (
	aliasMu sync.RWMutex
	aliases = map[string]func() Type{
		"string": String,
		"int":    Int,
		"float":  Float,
		"bool":   Bool,
	}
)

// RegisterType makes t resolvable by ParseType under the given alias.
// Registering an existing alias replaces it.
func RegisterType(alias string, t Type) {
	aliasMu.Lock()
	defer aliasMu.Unlock()
	aliases[alias] = func() Type { return t }
}

// ParseType converts a string type name to a Type.
// Supports the built-in aliases ("string", "int", "float", "bool"), any
// alias added via RegisterType, and slice forms like "[string]" or "[int]".
func ParseType(typeStr string) (Type, error) {
	// Handle slice types: [string], [int], etc.
	if len(typeStr) > 2 && typeStr[0] == '[' && typeStr[len(typeStr)-1] == ']' {
		elemType, err := ParseType(typeStr[1 : len(typeStr)-1])
		if err != nil {
			return nil, err
		}
		return Slice(elemType), nil
	}

	aliasMu.RLock()
	factory, ok := aliases[typeStr]
	aliasMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlias, typeStr)
	}
	return factory(), nil
}
