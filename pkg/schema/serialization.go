package schema

import (
	"encoding/json"
	"fmt"
	"strings"
)

// entry is the wire form of a Key: name plus type alias, in declaration
// order. Omittable keys carry a trailing "?" on the type alias.
type entry struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MarshalJSON serializes the schema as an ordered list of name/type pairs.
func (s *Schema) MarshalJSON() ([]byte, error) {
	raw := make([]entry, 0, len(s.keys))
	for _, k := range s.keys {
		if k.Type == nil {
			return nil, fmt.Errorf("key %s: type is nil", k.Name)
		}
		alias := k.Type.Name()
		if k.Omittable {
			alias += "?"
		}
		raw = append(raw, entry{Name: k.Name, Type: alias})
	}
	return json.Marshal(raw)
}

// UnmarshalJSON deserializes a schema from an ordered list of name/type
// pairs. Type aliases must be resolvable via ParseType.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var raw []entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	keys := make([]Key, 0, len(raw))
	for _, e := range raw {
		alias, omittable := strings.CutSuffix(e.Type, "?")
		t, err := ParseType(alias)
		if err != nil {
			return fmt.Errorf("key %s: %w", e.Name, err)
		}
		keys = append(keys, Key{Name: e.Name, Type: t, Omittable: omittable})
	}

	*s = *Empty().Merge(keys)
	return nil
}
