package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticekit/lattice"
	"github.com/latticekit/lattice/pkg/schema"
)

func TestDefine_Basics(t *testing.T) {
	reg := lattice.NewRegistry()

	book := reg.Define("Book")
	require.NoError(t, book.Attribute("title", schema.String()))
	require.NoError(t, book.Attribute("pages", "int"))

	assert.Equal(t, "Book", book.Name())
	assert.Nil(t, book.Parent())
	assert.True(t, book.HasAttribute("title"))
	assert.False(t, book.HasAttribute("isbn"))
	assert.Equal(t, []string{"title", "pages"}, book.AttributeNames())

	found, ok := reg.Lookup("Book")
	require.True(t, ok)
	assert.Same(t, book, found)
}

func TestDerive_InheritsSchemaAndMeta(t *testing.T) {
	reg := lattice.NewRegistry()

	media := reg.Define("Media")
	require.NoError(t, media.Attribute("title", schema.String()))
	media = media.WithMeta(map[string]any{"kind": "media"})

	book := media.Derive("Book")
	require.NoError(t, book.Attribute("pages", schema.Int()))

	assert.Equal(t, []string{"title", "pages"}, book.AttributeNames())
	assert.Equal(t, "media", book.Meta()["kind"])

	// The parent never sees the child's additions.
	assert.Equal(t, []string{"title"}, media.AttributeNames())
}

func TestWithMeta_Identity(t *testing.T) {
	reg := lattice.NewRegistry()
	d := reg.Define("Book")

	assert.Same(t, d, d.WithMeta(nil))
	assert.Same(t, d, d.WithMeta(map[string]any{}))
}

func TestWithMeta_NonMutating(t *testing.T) {
	reg := lattice.NewRegistry()

	d := reg.Define("Book")
	require.NoError(t, d.Attribute("title", schema.String()))

	tagged := d.WithMeta(map[string]any{"tag": 1})

	require.NotSame(t, d, tagged)
	assert.Empty(t, d.Meta(), "source meta must stay untouched")
	assert.Equal(t, 1, tagged.Meta()["tag"])
	assert.Equal(t, d.AttributeNames(), tagged.AttributeNames())

	// Attributes declared on the source afterwards still reach the tagged copy.
	require.NoError(t, d.Attribute("pages", schema.Int()))
	assert.True(t, tagged.HasAttribute("pages"))
}

func TestPropagation_LateDeclarations(t *testing.T) {
	reg := lattice.NewRegistry()

	parent := reg.Define("Parent")
	child := parent.Derive("Child")
	grandchild := child.Derive("Grandchild")

	require.NoError(t, parent.Attribute("a", schema.Int()))

	assert.True(t, child.HasAttribute("a"))
	assert.True(t, grandchild.HasAttribute("a"))

	// The child requires the attribute exactly as the parent does.
	_, err := child.Construct(map[string]any{})
	require.Error(t, err)
	_, err = child.Construct(map[string]any{"a": 1})
	require.NoError(t, err)
}

func TestPropagation_SkipsOverrides(t *testing.T) {
	reg := lattice.NewRegistry()

	parent := reg.Define("Parent")
	child := parent.Derive("Child")
	require.NoError(t, child.Attribute("a", schema.String()))

	// Parent later declares the same name with another type; the child's own
	// declaration wins.
	require.NoError(t, parent.Attribute("a", schema.Int()))

	_, err := child.Construct(map[string]any{"a": "own"})
	assert.NoError(t, err)
	_, err = child.Construct(map[string]any{"a": 1})
	assert.Error(t, err)

	_, err = parent.Construct(map[string]any{"a": 1})
	assert.NoError(t, err)
}

func TestRepeatedAttribute(t *testing.T) {
	reg := lattice.NewRegistry()

	d := reg.Define("Book")
	require.NoError(t, d.Attribute("title", schema.String()))

	err := d.Attribute("title", schema.Int())
	var repeated *lattice.RepeatedAttributeError
	require.ErrorAs(t, err, &repeated)
	assert.Equal(t, "title", repeated.Attribute)
	assert.Equal(t, "Book", repeated.Definition)

	// Overriding on a subclass is fine, and the subclass's type applies.
	sub := d.Derive("Novel")
	require.NoError(t, sub.Attribute("title", schema.Int()))

	_, err = sub.Construct(map[string]any{"title": 7})
	assert.NoError(t, err)
	_, err = sub.Construct(map[string]any{"title": "words"})
	assert.Error(t, err)

	// Position is preserved on override.
	require.NoError(t, d.Attribute("pages", schema.Int()))
	assert.Equal(t, []string{"title", "pages"}, sub.AttributeNames())
}

func TestAbstract_NotConstructible(t *testing.T) {
	reg := lattice.NewRegistry()

	base := reg.Abstract("Record")
	_, err := base.Construct(map[string]any{})
	assert.ErrorIs(t, err, lattice.ErrAbstractDefinition)

	// Subclasses of an abstract base construct normally.
	sub := base.Derive("Entry")
	require.NoError(t, sub.Attribute("id", schema.Int()))
	_, err = sub.Construct(map[string]any{"id": 1})
	assert.NoError(t, err)
}

func TestRegistry_Definitions(t *testing.T) {
	reg := lattice.NewRegistry()
	a := reg.Define("A")
	b := a.Derive("B")

	defs := reg.Definitions()
	require.Len(t, defs, 2)
	assert.Same(t, a, defs[0])
	assert.Same(t, b, defs[1])
}
