package validation

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// getNodeLine returns the line number of a node (1-based).
func getNodeLine(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	return node.Line
}

// getNodeColumn returns the column number of a node (1-based).
func getNodeColumn(node *yaml.Node) int {
	if node == nil {
		return 0
	}
	return node.Column
}

// nodeKindToString converts a yaml.Kind to a human-readable string.
func nodeKindToString(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "array"
	case yaml.MappingNode:
		return "object"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// describeNode names what a node holds, down to the scalar type.
func describeNode(node *yaml.Node) string {
	if node == nil {
		return "nothing"
	}
	if node.Kind != yaml.ScalarNode {
		return nodeKindToString(node.Kind)
	}
	switch node.ShortTag() {
	case "!!str":
		return fmt.Sprintf("string %q", node.Value)
	case "!!bool":
		return fmt.Sprintf("boolean %s", node.Value)
	case "!!int":
		return fmt.Sprintf("integer %s", node.Value)
	case "!!float":
		return fmt.Sprintf("float %s", node.Value)
	case "!!null":
		return "null"
	default:
		return nodeKindToString(node.Kind)
	}
}

// isNull reports whether node is an explicit null scalar.
func isNull(node *yaml.Node) bool {
	return node != nil && node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null"
}

func joinPath(parent, field string) string {
	if parent == "" {
		return field
	}
	return parent + "." + field
}

func indexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}
