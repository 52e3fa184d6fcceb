package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/catenarytransit/fleetcheck/internal/validation"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the fleet file schema",
	Long: `Print the fields a fleet file may contain.

Required fields are marked; every other field may be omitted or null.
Fields not listed are ignored unless strict_unknown_fields is enabled.

--json-schema prints a JSON Schema (draft-07) document that editors can use
for completion and inline validation of fleet files. JSON Schema integers
accept numbers such as 1.0 and -0; fleetcheck itself requires plain
non-negative integer literals, so run fleetcheck for the final verdict.`,
	Example: `  # Export a JSON Schema that rejects unknown fields
  fleetcheck schema --json-schema --strict > fleet.schema.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		asJSONSchema, _ := cmd.Flags().GetBool("json-schema")
		strict, _ := cmd.Flags().GetBool("strict")
		switch {
		case asJSONSchema:
			policy := validation.UnknownFieldsIgnore
			if strict {
				policy = validation.UnknownFieldsReject
			}
			return writeJSONSchema(cmd.OutOrStdout(), validation.FleetSchema, policy)
		case asJSON:
			return writeSchemaJSON(cmd.OutOrStdout(), validation.FleetSchema)
		}
		writeSchemaTree(cmd.OutOrStdout(), validation.FleetSchema)
		return nil
	},
}

func init() {
	schemaCmd.Flags().Bool("json", false, "Print the schema as JSON")
	schemaCmd.Flags().Bool("json-schema", false, "Print the schema as a JSON Schema document")
	schemaCmd.Flags().Bool("strict", false, "Forbid unknown fields in the JSON Schema")
	schemaCmd.MarkFlagsMutuallyExclusive("json", "json-schema")
	rootCmd.AddCommand(schemaCmd)
}

func writeSchemaJSON(w io.Writer, s validation.Schema) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schema: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// writeJSONSchema prints the exported schema after checking that it compiles.
func writeJSONSchema(w io.Writer, s validation.Schema, policy validation.UnknownFieldPolicy) error {
	doc := validation.JSONSchema(s, policy)
	if _, err := validation.CompileJSONSchema(doc); err != nil {
		return err
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON schema: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func writeSchemaTree(w io.Writer, s validation.Schema) {
	fmt.Fprintf(w, "%s: %s\n", s.Name, s.Description)
	writeFields(w, s.Fields(), 1)
}

func writeFields(w io.Writer, fields []validation.SchemaField, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, f := range fields {
		presence := "optional"
		if f.Required {
			presence = "required"
		}
		fmt.Fprintf(w, "%s%s (%s, %s): %s\n", indent, f.Name, f.Label(), presence, f.Description)

		children := f.Children
		if f.Items != nil {
			children = f.Items.Children
		}
		writeFields(w, children, depth+1)
	}
}
