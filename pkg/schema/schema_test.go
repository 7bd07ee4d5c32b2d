package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticekit/lattice/pkg/schema"
)

func TestMerge_OrderAndOverride(t *testing.T) {
	s := schema.Empty().Merge([]schema.Key{
		{Name: "a", Type: schema.Int()},
		{Name: "b", Type: schema.String()},
	})
	assert.Equal(t, []string{"a", "b"}, s.KeyNames())

	// Override-by-name replaces in place, position preserved.
	next := s.Merge([]schema.Key{
		{Name: "a", Type: schema.String()},
		{Name: "c", Type: schema.Bool()},
	})
	assert.Equal(t, []string{"a", "c"}, func() []string {
		k1, _ := next.Key("a")
		k3, _ := next.Key("c")
		return []string{k1.Name, k3.Name}
	}())
	assert.Equal(t, []string{"a", "b", "c"}, next.KeyNames())

	overridden, _ := next.Key("a")
	assert.Equal(t, "string", overridden.Type.Name())

	// The receiver is untouched.
	original, _ := s.Key("a")
	assert.Equal(t, "int", original.Type.Name())
	assert.Equal(t, 2, s.Len())
}

func TestTransforms_ForwardOnly(t *testing.T) {
	s := schema.Empty().Merge([]schema.Key{{Name: "plain", Type: schema.String()}})
	s = s.WithKeyTransform(strings.ToUpper)

	// Apply runs the transform; already-merged keys keep their names.
	k := s.Apply(schema.Key{Name: "next", Type: schema.String()})
	assert.Equal(t, "NEXT", k.Name)
	assert.Equal(t, []string{"plain"}, s.KeyNames())

	// Composition: the later transform runs after the earlier one.
	s = s.WithKeyTransform(func(name string) string { return name + "_v2" })
	k = s.Apply(schema.Key{Name: "next", Type: schema.String()})
	assert.Equal(t, "NEXT_v2", k.Name)
}

func TestTypeTransform(t *testing.T) {
	s := schema.Empty().WithTypeTransform(func(t schema.Type) schema.Type {
		return schema.WithTypeMeta(t, map[string]any{"tagged": true})
	})

	k := s.Apply(schema.Key{Name: "a", Type: schema.Int()})
	assert.Equal(t, true, schema.TypeMeta(k.Type)["tagged"])
	// Tagging is non-destructive: the bare type is still reachable.
	assert.IsType(t, &schema.IntType{}, schema.Underlying(k.Type))
}

func TestCoerce(t *testing.T) {
	s := schema.Empty().Merge([]schema.Key{
		{Name: "x", Type: schema.Int()},
		{Name: "y", Type: schema.Int(), Omittable: true},
	})

	t.Run("required present", func(t *testing.T) {
		out, err := s.Coerce(map[string]any{"x": 1})
		require.NoError(t, err)
		assert.Equal(t, 1, out["x"])
		_, ok := out["y"]
		assert.False(t, ok)
	})

	t.Run("missing required", func(t *testing.T) {
		_, err := s.Coerce(map[string]any{})
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrMissingKey)

		var verr *schema.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "x", verr.Key)
	})

	t.Run("mismatch", func(t *testing.T) {
		_, err := s.Coerce(map[string]any{"x": "one"})
		assert.ErrorIs(t, err, schema.ErrSchemaMismatch)
	})

	t.Run("unknown keys ignored by default", func(t *testing.T) {
		out, err := s.Coerce(map[string]any{"x": 1, "zzz": true})
		require.NoError(t, err)
		_, ok := out["zzz"]
		assert.False(t, ok)
	})

	t.Run("strict rejects unknown keys", func(t *testing.T) {
		_, err := s.Strict().Coerce(map[string]any{"x": 1, "zzz": true})
		assert.ErrorIs(t, err, schema.ErrUnknownKey)
	})

	t.Run("multiple failures aggregate", func(t *testing.T) {
		_, err := s.Coerce(map[string]any{"x": "one", "y": "two"})
		require.Error(t, err)
		assert.Len(t, schema.ValidationErrors(err), 2)
		assert.ErrorIs(t, err, schema.ErrSchemaMismatch)
	})
}

func TestKeyNames_Memoized(t *testing.T) {
	s := schema.Empty().Merge([]schema.Key{{Name: "a", Type: schema.Int()}})

	names := s.KeyNames()
	names[0] = "mutated"
	assert.Equal(t, []string{"a"}, s.KeyNames(), "callers get copies")
}

func TestSerialization_RoundTrip(t *testing.T) {
	s := schema.Empty().Merge([]schema.Key{
		{Name: "title", Type: schema.String()},
		{Name: "tags", Type: schema.Slice(schema.String())},
		{Name: "rating", Type: schema.Int(), Omittable: true},
	})

	data, err := s.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name":"title","type":"string"},
		{"name":"tags","type":"[string]"},
		{"name":"rating","type":"int?"}
	]`, string(data))

	var restored schema.Schema
	require.NoError(t, restored.UnmarshalJSON(data))
	assert.Equal(t, s.KeyNames(), restored.KeyNames())

	rating, ok := restored.Key("rating")
	require.True(t, ok)
	assert.True(t, rating.Omittable)
}
