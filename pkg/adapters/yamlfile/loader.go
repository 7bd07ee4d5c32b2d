// Package yamlfile declares lattice struct definitions from a YAML or JSON
// schema file, so hosts can keep record shapes in configuration instead of
// code.
//
// File format:
//
//	structs:
//	  - name: Media
//	    abstract: true
//	  - name: Book
//	    extends: Media
//	    meta:
//	      table: books
//	    attributes:
//	      - name: title
//	        type: string
//	      - name: rating
//	        type: int
//	        omittable: true
//	      - name: publisher
//	        attributes:
//	          - name: name
//	            type: string
//	      - name: chapters
//	        array: true
//	        attributes:
//	          - name: heading
//	            type: string
//
// A "?" suffix on a type alias is shorthand for omittable; nested attribute
// lists synthesize nested struct definitions, and array entries produce
// slices of them.
package yamlfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/latticekit/lattice"
	"github.com/latticekit/lattice/pkg/schema"
)

// File is the top-level schema file structure.
type File struct {
	Structs []StructDecl `yaml:"structs" json:"structs"`
}

// StructDecl declares one struct definition.
type StructDecl struct {
	Name       string         `yaml:"name" json:"name"`
	Extends    string         `yaml:"extends" json:"extends"`
	Abstract   bool           `yaml:"abstract" json:"abstract"`
	Meta       map[string]any `yaml:"meta" json:"meta"`
	Attributes []AttrDecl     `yaml:"attributes" json:"attributes"`
}

// AttrDecl declares one attribute. Either Type or a nested Attributes list
// must be present.
type AttrDecl struct {
	Name       string     `yaml:"name" json:"name"`
	Type       string     `yaml:"type" json:"type"`
	Omittable  bool       `yaml:"omittable" json:"omittable"`
	Array      bool       `yaml:"array" json:"array"`
	Attributes []AttrDecl `yaml:"attributes" json:"attributes"`
}

// Load reads a schema file (YAML or JSON by extension) and declares its
// structs into the registry, returning them in file order.
func Load(path string, reg *lattice.Registry) ([]*lattice.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var f File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	return Declare(f, reg)
}

// Declare turns the parsed file into registered definitions, in order, so
// later structs can extend earlier ones.
func Declare(f File, reg *lattice.Registry) ([]*lattice.Definition, error) {
	defs := make([]*lattice.Definition, 0, len(f.Structs))

	for _, decl := range f.Structs {
		if decl.Name == "" {
			return nil, fmt.Errorf("struct declaration without a name")
		}

		var def *lattice.Definition
		switch {
		case decl.Extends != "":
			parent, ok := reg.Lookup(decl.Extends)
			if !ok {
				return nil, fmt.Errorf("struct %s extends unknown struct %s", decl.Name, decl.Extends)
			}
			def = parent.Derive(decl.Name)
		case decl.Abstract:
			def = reg.Abstract(decl.Name)
		default:
			def = reg.Define(decl.Name)
		}

		def = def.WithMeta(decl.Meta)

		if err := declareAttrs(def, reg, decl.Attributes); err != nil {
			return nil, fmt.Errorf("struct %s: %w", decl.Name, err)
		}
		defs = append(defs, def)
	}

	return defs, nil
}

func declareAttrs(def *lattice.Definition, reg *lattice.Registry, attrs []AttrDecl) error {
	for _, a := range attrs {
		omittable := a.Omittable
		var typ any

		switch {
		case len(a.Attributes) > 0:
			member := reg.Define(def.Name() + "." + a.Name)
			if err := declareAttrs(member, reg, a.Attributes); err != nil {
				return err
			}
			if a.Array {
				typ = schema.Slice(member)
			} else {
				typ = member
			}

		case a.Type != "":
			alias, marked := strings.CutSuffix(a.Type, "?")
			omittable = omittable || marked
			t, err := schema.ParseType(alias)
			if err != nil {
				return fmt.Errorf("attribute %s: %w", a.Name, err)
			}
			if a.Array {
				typ = schema.Slice(t)
			} else {
				typ = t
			}
		}

		// typ stays nil when neither a type nor nested attributes were
		// given; the registrar reports the missing type specification.
		var err error
		if omittable {
			err = def.OmittableAttribute(a.Name, typ)
		} else {
			err = def.Attribute(a.Name, typ)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
