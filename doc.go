/*
Package lattice builds structured records from loosely-typed input. A struct
definition declares a named, ordered collection of typed attributes; instances
are produced by coercing and validating raw key/value maps (or arbitrary Go
values) against that schema.

It implements an incremental schema-composition model: attributes are declared
one at a time or in batches, subclass definitions inherit and may override
their parent's attributes, and attributes added to a parent after a subclass
was created still propagate to it.

# Concept

Definitions live in a Registry, which owns definition creation and keeps the
parent/descendant links used for attribute propagation. The type system
(validation, coercion, builtin types) lives in pkg/schema; definitions
themselves are schema types, so structs nest and compose like any other type.

# Key Features

  - Incremental declaration: add attributes to a definition at any time, even
    after subclasses exist; descendants stay consistent automatically.
  - Inheritance with override: a subclass may re-declare an inherited
    attribute; re-declaring one fixed at the same level is an error.
  - Nested and array-of-struct attributes built from inline blocks.
  - Non-mutating metadata tagging (WithMeta) and struct unions (Sum).
  - Strict and fallible construction paths (Construct / TryConstruct).

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/latticekit/lattice"
		"github.com/latticekit/lattice/pkg/schema"
	)

	func main() {
		reg := lattice.NewRegistry()

		book := reg.Define("Book")
		book.Attribute("title", schema.String())
		book.Attribute("pages", "int")
		book.OmittableAttribute("subtitle", schema.String())
		book.Attribute("publisher", nil, func(p *lattice.Definition) error {
			return p.Attribute("name", schema.String())
		})

		inst, err := book.Construct(map[string]any{
			"title":     "Dune",
			"pages":     412,
			"publisher": map[string]any{"name": "Chilton"},
		})
		if err != nil {
			log.Fatal(err)
		}

		title, _ := inst.Get("title")
		fmt.Println(title)
	}
*/
package lattice
