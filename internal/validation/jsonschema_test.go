// Package validation_test tests the JSON Schema export against the fleet validator.
// Related: internal/validation/jsonschema.go
// Tags: validation, json-schema, export, gojsonschema
package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestJSONSchema_Shape(t *testing.T) {
	t.Parallel()

	doc := JSONSchema(FleetSchema, UnknownFieldsIgnore)
	assert.Equal(t, JSONSchemaDraft, doc["$schema"])
	assert.Equal(t, "object", doc["type"])
	assert.Equal(t, []string{"vehicles"}, doc["required"])
	assert.NotContains(t, doc, "additionalProperties")

	vehicles := doc["properties"].(map[string]any)["vehicles"].(map[string]any)
	assert.Equal(t, "array", vehicles["type"])

	roster := vehicles["items"].(map[string]any)["properties"].(map[string]any)["roster"].(map[string]any)
	entry := roster["items"].(map[string]any)
	engine := entry["properties"].(map[string]any)["engine"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, engine["type"])

	strict := JSONSchema(FleetSchema, UnknownFieldsReject)
	assert.Equal(t, false, strict["additionalProperties"])
}

func TestCompileJSONSchema_AgreesWithValidator(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		policy  UnknownFieldPolicy
		// exportedLenient marks inputs the JSON Schema cannot reject: draft-07
		// "integer" matches any number with a zero fraction, so 1.0 and -0 pass
		// there while the validator requires a plain non-negative integer literal.
		exportedLenient bool
	}{
		"reference document":       {content: acmeDocument},
		"empty vehicles":           {content: `{"vehicles":[]}`},
		"missing vehicles":         {content: `{}`},
		"root is array":            {content: `[]`},
		"missing model":            {content: strings.Replace(acmeDocument, `"model":"X1",`, "", 1)},
		"model is number":          {content: strings.Replace(acmeDocument, `"model":"X1"`, `"model":4`, 1)},
		"required null":            {content: strings.Replace(acmeDocument, `"model":"X1"`, `"model":null`, 1)},
		"optional null":            {content: strings.Replace(acmeDocument, `"division":"North"`, `"division":null`, 1)},
		"sorting flag is string":   {content: strings.Replace(acmeDocument, `"use_numeric_sorting":true`, `"use_numeric_sorting":"true"`, 1)},
		"negative start number":    {content: strings.Replace(acmeDocument, `"start_number":100`, `"start_number":-1`, 1)},
		"start number too large":   {content: strings.Replace(acmeDocument, `"start_number":100`, `"start_number":4294967296`, 1)},
		"start number at maximum":  {content: strings.Replace(acmeDocument, `"start_number":100`, `"start_number":4294967295`, 1)},
		"year out of range":        {content: strings.Replace(acmeDocument, `"division":"North"`, `"years":[2019,70000]`, 1)},
		"years valid":              {content: strings.Replace(acmeDocument, `"division":"North"`, `"years":[2019,2020]`, 1)},
		"unknown field ignored":    {content: strings.Replace(acmeDocument, `"model":"X1"`, `"model":"X1","color":"red"`, 1)},
		"unknown field rejected":   {content: strings.Replace(acmeDocument, `"model":"X1"`, `"model":"X1","color":"red"`, 1), policy: UnknownFieldsReject},
		"strict reference is fine": {content: acmeDocument, policy: UnknownFieldsReject},
		"start number with fraction": {
			content:         strings.Replace(acmeDocument, `"start_number":100`, `"start_number":1.0`, 1),
			exportedLenient: true,
		},
		"start number negative zero": {
			content:         strings.Replace(acmeDocument, `"start_number":100`, `"start_number":-0`, 1),
			exportedLenient: true,
		},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			schema, err := CompileJSONSchema(JSONSchema(FleetSchema, tc.policy))
			require.NoError(t, err)

			exported, err := schema.Validate(gojsonschema.NewStringLoader(tc.content))
			require.NoError(t, err)

			native := NewFleetValidator(WithUnknownFieldPolicy(tc.policy)).ValidateContent([]byte(tc.content))
			if tc.exportedLenient {
				assert.False(t, native.Valid)
				assert.True(t, exported.Valid(), "exported errors: %v", exported.Errors())
				return
			}
			assert.Equal(t, native.Valid, exported.Valid(), "native errors: %v, exported errors: %v", native.Errors, exported.Errors())
		})
	}
}
