package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var validateCmd = &cobra.Command{
	Use:   "validate <struct> <data-file>",
	Short: "Check a data file against a struct definition",
	Long:  `Reads a YAML or JSON data file and constructs the named struct from it, reporting coercion failures.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0], args[1]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Data is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, structName, dataPath string) error {
	reg, _, err := loadRegistry(cmd)
	if err != nil {
		return err
	}

	def, ok := reg.Lookup(structName)
	if !ok {
		return fmt.Errorf("struct %q is not declared in the schema file", structName)
	}

	input, err := readData(dataPath)
	if err != nil {
		return err
	}

	res := def.TryConstruct(input)
	if !res.Ok() {
		return fmt.Errorf("%s", res.Message())
	}

	inst, _ := res.Value()
	fmt.Println(inst)
	return nil
}

func readData(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var input map[string]any
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &input); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}
	return input, nil
}
