package lattice_test

import (
	"fmt"

	"github.com/latticekit/lattice"
	"github.com/latticekit/lattice/pkg/schema"
)

func Example() {
	reg := lattice.NewRegistry()

	book := reg.Define("Book")
	book.Attribute("title", schema.String())
	book.Attribute("pages", "int")
	book.OmittableAttribute("subtitle", schema.String())

	inst, err := book.Construct(map[string]any{
		"title": "Dune",
		"pages": 412,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(inst)
	// Output: Book{pages: 412, title: Dune}
}

func ExampleDefinition_TryConstruct() {
	reg := lattice.NewRegistry()

	point := reg.Define("Point")
	point.Attribute("x", schema.Int())

	res := point.TryConstruct(map[string]any{"x": "not-an-int"})
	fmt.Println(res.Ok())
	fmt.Println(res.Input() != nil)
	// Output:
	// false
	// true
}

func ExampleSum() {
	reg := lattice.NewRegistry()

	circle := reg.Define("Circle")
	circle.Attribute("radius", schema.Float())
	square := reg.Define("Square")
	square.Attribute("side", schema.Float())

	shape := lattice.Sum(circle, square)

	c, _ := circle.Construct(map[string]any{"radius": 1.5})
	fmt.Println(shape.Accepts(c))
	fmt.Println(shape.Accepts("something else"))
	// Output:
	// true
	// false
}
