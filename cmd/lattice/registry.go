package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/latticekit/lattice"
	"github.com/latticekit/lattice/internal/logging"
	"github.com/latticekit/lattice/pkg/adapters/yamlfile"
)

// loadRegistry builds a registry from the --schema file, honouring
// --log-level.
func loadRegistry(cmd *cobra.Command) (*lattice.Registry, []*lattice.Definition, error) {
	level, _ := cmd.Flags().GetString("log-level")
	path, _ := cmd.Flags().GetString("schema")

	reg := lattice.NewRegistry(lattice.WithLogger(logging.New(logging.ParseLevel(level))))
	defs, err := yamlfile.Load(path, reg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load schema file: %w", err)
	}
	return reg, defs, nil
}
