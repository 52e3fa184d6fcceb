package validation

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/catenarytransit/fleetcheck/internal/fleet"
	"gopkg.in/yaml.v3"
)

// FleetValidator checks vehicle files against FleetSchema.
type FleetValidator struct {
	schema        Schema
	unknownFields UnknownFieldPolicy
}

// Option configures a FleetValidator.
type Option func(*FleetValidator)

// WithUnknownFieldPolicy sets how undeclared fields are handled.
func WithUnknownFieldPolicy(p UnknownFieldPolicy) Option {
	return func(v *FleetValidator) {
		v.unknownFields = p
	}
}

// NewFleetValidator creates a validator. Unknown fields are ignored unless
// WithUnknownFieldPolicy says otherwise.
func NewFleetValidator(opts ...Option) *FleetValidator {
	v := &FleetValidator{
		schema:        FleetSchema,
		unknownFields: UnknownFieldsIgnore,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// UnknownFields returns the validator's unknown-field policy.
func (v *FleetValidator) UnknownFields() UnknownFieldPolicy {
	return v.unknownFields
}

// Validate reads the file at path in full and validates its content.
func (v *FleetValidator) Validate(path string) *ValidationResult {
	content, err := os.ReadFile(path)
	if err != nil {
		result := &ValidationResult{Valid: true}
		result.AddError(&ValidationError{
			Message: fmt.Sprintf("failed to read file: %v", err),
			Hint:    "Check that the file is readable",
		})
		return result
	}
	return v.ValidateContent(content)
}

// ValidateContent validates raw file content. It has no side effects.
func (v *FleetValidator) ValidateContent(content []byte) *ValidationResult {
	result := &ValidationResult{Valid: true}

	root, err := parseDocument(content)
	if err != nil {
		result.AddError(parseFailure(content, err))
		return result
	}

	v.checkValue(root, v.schema.Root, "", result)
	if !result.Valid {
		return result
	}

	var doc fleet.RootDocument
	if err := root.Decode(&doc); err != nil {
		result.AddError(&ValidationError{
			Message: fmt.Sprintf("failed to decode document: %v", err),
		})
		return result
	}

	result.Document = &doc
	result.Summary = buildSummary(&doc)
	return result
}

func parseFailure(content []byte, err error) *ValidationError {
	ve := &ValidationError{
		Message: fmt.Sprintf("failed to parse JSON: %v", err),
		Hint:    "Check the JSON syntax for errors",
	}
	var se *syntaxError
	if errors.As(err, &se) && se.offset > 0 {
		ve.Line, ve.Column = newLineIndex(content).position(se.offset)
	}
	return ve
}

// checkValue validates node against field, recording violations under path.
func (v *FleetValidator) checkValue(node *yaml.Node, field SchemaField, path string, result *ValidationResult) {
	switch field.Type {
	case FieldTypeObject:
		v.checkObject(node, field, path, result)
	case FieldTypeArray:
		v.checkArray(node, field, path, result)
	case FieldTypeString:
		v.checkScalar(node, field, path, "!!str", result)
	case FieldTypeBool:
		v.checkScalar(node, field, path, "!!bool", result)
	case FieldTypeUint16:
		v.checkUnsigned(node, field, path, 16, result)
	case FieldTypeUint32:
		v.checkUnsigned(node, field, path, 32, result)
	default:
		result.AddError(&ValidationError{
			Path:    path,
			Message: fmt.Sprintf("schema declares unsupported type %q", field.Type),
		})
	}
}

func (v *FleetValidator) checkObject(node *yaml.Node, field SchemaField, path string, result *ValidationResult) {
	if node.Kind != yaml.MappingNode {
		addTypeError(node, field, path, result)
		return
	}

	seen := make(map[string]bool, len(field.Children))
	kept := node.Content[:0:0]
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		name := keyNode.Value
		childPath := joinPath(path, name)

		child, known := field.Child(name)
		if !known {
			if v.unknownFields == UnknownFieldsReject {
				result.AddError(&ValidationError{
					Path:    childPath,
					Line:    getNodeLine(keyNode),
					Column:  getNodeColumn(keyNode),
					Message: fmt.Sprintf("unknown field: %s", name),
					Hint:    "Remove the field or allow unknown fields",
				})
			}
			// Undeclared pairs are dropped so the typed decode never sees them.
			continue
		}

		if seen[name] {
			result.AddError(&ValidationError{
				Path:    childPath,
				Line:    getNodeLine(keyNode),
				Column:  getNodeColumn(keyNode),
				Message: fmt.Sprintf("duplicate field: %s", name),
				Hint:    fmt.Sprintf("Keep a single '%s' key in this object", name),
			})
			continue
		}
		seen[name] = true

		// An explicit null on an optional field means absent.
		if !child.Required && isNull(valNode) {
			continue
		}
		kept = append(kept, keyNode, valNode)
		v.checkValue(valNode, child, childPath, result)
	}
	node.Content = kept

	for _, child := range field.Children {
		if !child.Required || seen[child.Name] {
			continue
		}
		result.AddError(&ValidationError{
			Path:     joinPath(path, child.Name),
			Line:     getNodeLine(node),
			Column:   getNodeColumn(node),
			Message:  fmt.Sprintf("missing required field: %s", child.Name),
			Expected: typeLabel(child.Type),
			Actual:   describeNode(nil),
			Hint:     fmt.Sprintf("Add the '%s' field to this object", child.Name),
		})
	}
}

func (v *FleetValidator) checkArray(node *yaml.Node, field SchemaField, path string, result *ValidationResult) {
	if node.Kind != yaml.SequenceNode {
		addTypeError(node, field, path, result)
		return
	}
	if field.Items == nil {
		return
	}
	for i, elem := range node.Content {
		v.checkValue(elem, *field.Items, indexPath(path, i), result)
	}
}

func (v *FleetValidator) checkScalar(node *yaml.Node, field SchemaField, path, tag string, result *ValidationResult) {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != tag {
		addTypeError(node, field, path, result)
	}
}

func (v *FleetValidator) checkUnsigned(node *yaml.Node, field SchemaField, path string, bits int, result *ValidationResult) {
	if node.Kind != yaml.ScalarNode {
		addTypeError(node, field, path, result)
		return
	}
	if node.ShortTag() != "!!int" {
		addTypeError(node, field, path, result)
		return
	}

	if _, err := strconv.ParseUint(node.Value, 10, bits); err != nil {
		msg := "integer out of range"
		if len(node.Value) > 0 && node.Value[0] == '-' {
			msg = "negative value for unsigned integer"
		}
		result.AddError(&ValidationError{
			Path:     path,
			Line:     getNodeLine(node),
			Column:   getNodeColumn(node),
			Message:  msg,
			Expected: fmt.Sprintf("%s (0 to %d)", typeLabel(field.Type), uint64(1)<<bits-1),
			Actual:   describeNode(node),
		})
	}
}

func addTypeError(node *yaml.Node, field SchemaField, path string, result *ValidationResult) {
	where := path
	if where == "" {
		where = "document root"
	}
	result.AddError(&ValidationError{
		Path:     path,
		Line:     getNodeLine(node),
		Column:   getNodeColumn(node),
		Message:  "type mismatch",
		Expected: typeLabel(field.Type),
		Actual:   describeNode(node),
		Hint:     fmt.Sprintf("Change '%s' to be a %s", where, typeLabel(field.Type)),
	})
}

// buildSummary counts the contents of a valid document.
func buildSummary(doc *fleet.RootDocument) *DocumentSummary {
	numeric, dated := 0, 0
	for _, v := range doc.Vehicles {
		for _, r := range v.Roster {
			if _, _, ok := r.FleetSelection.NumericRange(); ok {
				numeric++
			}
			if r.HasYears() {
				dated++
			}
		}
	}
	return &DocumentSummary{
		Counts: map[string]int{
			"vehicles":       len(doc.Vehicles),
			"roster_entries": doc.RosterCount(),
			"numeric_ranges": numeric,
			"dated_entries":  dated,
		},
	}
}
