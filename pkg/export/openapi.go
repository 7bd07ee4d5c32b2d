// Package export renders lattice struct definitions as OpenAPI 3 schemas,
// so hosts can publish the shapes they accept.
package export

import (
	"github.com/getkin/kin-openapi/openapi3"

	"github.com/latticekit/lattice"
	"github.com/latticekit/lattice/pkg/schema"
)

// OpenAPISchema renders a definition as an OpenAPI object schema.
// Required attributes become required properties; omittable ones stay
// optional. Nested struct definitions, slices and sums render recursively.
// Definition meta, when present, is attached under the "x-meta" extension.
func OpenAPISchema(d *lattice.Definition) *openapi3.Schema {
	out := openapi3.NewObjectSchema()
	out.Title = d.Name()

	for _, k := range d.Schema().Keys() {
		out.WithProperty(k.Name, typeSchema(k.Type))
		if !k.Omittable {
			out.Required = append(out.Required, k.Name)
		}
	}

	if d.Schema().IsStrict() {
		out.WithoutAdditionalProperties()
	}

	if meta := d.Meta(); len(meta) > 0 {
		if out.Extensions == nil {
			out.Extensions = map[string]any{}
		}
		out.Extensions["x-meta"] = meta
	}

	return out
}

func typeSchema(t schema.Type) *openapi3.Schema {
	switch v := schema.Underlying(t).(type) {
	case *lattice.Definition:
		return OpenAPISchema(v)
	case *lattice.SumType:
		return openapi3.NewOneOfSchema(OpenAPISchema(v.Left()), OpenAPISchema(v.Right()))
	case *schema.SliceType:
		return openapi3.NewArraySchema().WithItems(typeSchema(v.Elem()))
	case *schema.UnionType:
		return openapi3.NewOneOfSchema(typeSchema(v.Left()), typeSchema(v.Right()))
	case *schema.StringType:
		return openapi3.NewStringSchema()
	case *schema.IntType:
		return openapi3.NewIntegerSchema()
	case *schema.FloatType:
		return openapi3.NewFloat64Schema()
	case *schema.BoolType:
		return openapi3.NewBoolSchema()
	default:
		// Custom and map types have no canonical OpenAPI shape; emit a
		// free-form schema labeled with the type name.
		s := openapi3.NewSchema()
		s.Description = t.Name()
		return s
	}
}
