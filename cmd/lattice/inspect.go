package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/latticekit/lattice/pkg/export"
)

var inspectOpenAPI bool

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "List the declared struct definitions",
	Long:  `Prints every struct in the schema file with its attributes, or the OpenAPI rendering with --openapi.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runInspect(cmd); err != nil {
			fmt.Printf("Inspect failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectOpenAPI, "openapi", false, "Emit OpenAPI schemas as JSON")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command) error {
	_, defs, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	if inspectOpenAPI {
		schemas := make(map[string]any, len(defs))
		for _, def := range defs {
			schemas[def.Name()] = export.OpenAPISchema(def)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(schemas)
	}

	for _, def := range defs {
		kind := ""
		if def.Abstract() {
			kind = " (abstract)"
		}
		fmt.Printf("%s%s\n", def.Name(), kind)
		for _, k := range def.Schema().Keys() {
			marker := ""
			if k.Omittable {
				marker = "?"
			}
			fmt.Printf("  %s%s: %s\n", k.Name, marker, k.Type.Name())
		}
	}
	return nil
}
