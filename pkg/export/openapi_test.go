package export_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticekit/lattice"
	"github.com/latticekit/lattice/pkg/export"
	"github.com/latticekit/lattice/pkg/schema"
)

func TestOpenAPISchema(t *testing.T) {
	reg := lattice.NewRegistry()

	book := reg.Define("Book")
	require.NoError(t, book.Attribute("title", schema.String()))
	require.NoError(t, book.OmittableAttribute("rating", schema.Int()))
	require.NoError(t, book.Attribute("tags", schema.Slice(schema.String())))
	require.NoError(t, book.Attribute("publisher", nil, func(p *lattice.Definition) error {
		return p.Attribute("name", schema.String())
	}))
	book = book.WithMeta(map[string]any{"table": "books"})

	out := export.OpenAPISchema(book)

	assert.Equal(t, "Book", out.Title)
	assert.True(t, out.Type.Is("object"))
	assert.ElementsMatch(t, []string{"title", "tags", "publisher"}, out.Required)

	require.Contains(t, out.Properties, "title")
	assert.True(t, out.Properties["title"].Value.Type.Is("string"))

	require.Contains(t, out.Properties, "rating")
	assert.True(t, out.Properties["rating"].Value.Type.Is("integer"))

	require.Contains(t, out.Properties, "tags")
	tags := out.Properties["tags"].Value
	assert.True(t, tags.Type.Is("array"))
	require.NotNil(t, tags.Items)
	assert.True(t, tags.Items.Value.Type.Is("string"))

	require.Contains(t, out.Properties, "publisher")
	publisher := out.Properties["publisher"].Value
	assert.True(t, publisher.Type.Is("object"))
	assert.Contains(t, publisher.Properties, "name")

	require.NotNil(t, out.Extensions)
	assert.Equal(t, map[string]any{"table": "books"}, out.Extensions["x-meta"])
}

func TestOpenAPISchema_Sum(t *testing.T) {
	reg := lattice.NewRegistry()

	circle := reg.Define("Circle")
	require.NoError(t, circle.Attribute("radius", schema.Float()))
	square := reg.Define("Square")
	require.NoError(t, square.Attribute("side", schema.Float()))

	drawing := reg.Define("Drawing")
	require.NoError(t, drawing.Attribute("shape", lattice.Sum(circle, square)))

	out := export.OpenAPISchema(drawing)
	require.Contains(t, out.Properties, "shape")
	oneOf := out.Properties["shape"].Value.OneOf
	require.Len(t, oneOf, 2)
	assert.Equal(t, "Circle", oneOf[0].Value.Title)
	assert.Equal(t, "Square", oneOf[1].Value.Title)
}

func TestOpenAPISchema_Strict(t *testing.T) {
	reg := lattice.NewRegistry()
	d := reg.Define("Config")
	require.NoError(t, d.Attribute("key", schema.String()))
	d.Strict()

	out := export.OpenAPISchema(d)
	require.NotNil(t, out.AdditionalProperties.Has)
	assert.False(t, *out.AdditionalProperties.Has)
}
