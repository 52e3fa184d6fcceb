package validation

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchemaDraft is the meta-schema the exported document declares.
const JSONSchemaDraft = "http://json-schema.org/draft-07/schema#"

// JSONSchema renders s as a JSON Schema document for editors and other
// tooling. Optional object fields accept null. Under UnknownFieldsReject
// objects forbid additional properties.
func JSONSchema(s Schema, policy UnknownFieldPolicy) map[string]any {
	doc := fieldSchema(s.Root, policy)
	doc["$schema"] = JSONSchemaDraft
	doc["title"] = s.Name
	doc["description"] = s.Description
	return doc
}

// CompileJSONSchema loads doc with gojsonschema, failing if it is not a valid schema.
func CompileJSONSchema(doc map[string]any) (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("compiling JSON schema: %w", err)
	}
	return schema, nil
}

func fieldSchema(f SchemaField, policy UnknownFieldPolicy) map[string]any {
	out := map[string]any{}
	if f.Description != "" {
		out["description"] = f.Description
	}

	switch f.Type {
	case FieldTypeObject:
		out["type"] = "object"
		props := make(map[string]any, len(f.Children))
		required := []string{}
		for _, child := range f.Children {
			prop := fieldSchema(child, policy)
			if child.Required {
				required = append(required, child.Name)
			} else {
				prop["type"] = []any{prop["type"], "null"}
			}
			props[child.Name] = prop
		}
		out["properties"] = props
		if len(required) > 0 {
			out["required"] = required
		}
		if policy == UnknownFieldsReject {
			out["additionalProperties"] = false
		}
	case FieldTypeArray:
		out["type"] = "array"
		if f.Items != nil {
			out["items"] = fieldSchema(*f.Items, policy)
		}
	case FieldTypeString:
		out["type"] = "string"
	case FieldTypeBool:
		out["type"] = "boolean"
	case FieldTypeUint16:
		out["type"] = "integer"
		out["minimum"] = 0
		out["maximum"] = 65535
	case FieldTypeUint32:
		out["type"] = "integer"
		out["minimum"] = 0
		out["maximum"] = uint64(4294967295)
	}
	return out
}
