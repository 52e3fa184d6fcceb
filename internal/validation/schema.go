package validation

// FieldType represents the expected type of a schema field.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeBool   FieldType = "bool"
	FieldTypeUint16 FieldType = "uint16"
	FieldTypeUint32 FieldType = "uint32"
	FieldTypeArray  FieldType = "array"
	FieldTypeObject FieldType = "object"
)

// UnknownFieldPolicy controls how fields absent from the schema are treated.
type UnknownFieldPolicy int

const (
	// UnknownFieldsIgnore silently skips fields the schema does not declare.
	UnknownFieldsIgnore UnknownFieldPolicy = iota
	// UnknownFieldsReject reports every undeclared field as a violation.
	UnknownFieldsReject
)

// String returns the config-facing name of the policy.
func (p UnknownFieldPolicy) String() string {
	switch p {
	case UnknownFieldsIgnore:
		return "ignore"
	case UnknownFieldsReject:
		return "reject"
	default:
		return "unknown"
	}
}

// SchemaField defines a field in the document schema.
type SchemaField struct {
	Name        string        `json:"name,omitempty"`
	Type        FieldType     `json:"type"`
	Required    bool          `json:"required"`
	Description string        `json:"description,omitempty"`
	Children    []SchemaField `json:"children,omitempty"` // fields of an object
	Items       *SchemaField  `json:"items,omitempty"`    // element shape of an array
}

// Child returns the declared child field with the given name.
func (f SchemaField) Child(name string) (SchemaField, bool) {
	for _, c := range f.Children {
		if c.Name == name {
			return c, true
		}
	}
	return SchemaField{}, false
}

// Schema is the complete declarative shape of a fleet document.
type Schema struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Root        SchemaField `json:"root"`
}

// Fields returns the top-level fields of the schema.
func (s Schema) Fields() []SchemaField {
	return s.Root.Children
}

var fleetSelectorFields = []SchemaField{
	{Name: "start_number", Type: FieldTypeUint32, Description: "First fleet number, inclusive"},
	{Name: "end_number", Type: FieldTypeUint32, Description: "Last fleet number, inclusive"},
	{Name: "start_text", Type: FieldTypeString, Description: "First fleet code for text ranges"},
	{Name: "end_text", Type: FieldTypeString, Description: "Last fleet code for text ranges"},
	{Name: "use_numeric_sorting", Type: FieldTypeBool, Required: true, Description: "Whether units sort numerically"},
}

var rosterFields = []SchemaField{
	{
		Name:        "fleet_selection",
		Type:        FieldTypeObject,
		Required:    true,
		Description: "Fleet numbers or codes covered by this entry",
		Children:    fleetSelectorFields,
	},
	{Name: "engine", Type: FieldTypeString, Description: "Engine model"},
	{Name: "transmission", Type: FieldTypeString, Description: "Transmission model"},
	{Name: "notes", Type: FieldTypeString, Description: "Free-form notes"},
	{
		Name:        "years",
		Type:        FieldTypeArray,
		Description: "Model or delivery years",
		Items:       &SchemaField{Type: FieldTypeUint16},
	},
	{Name: "division", Type: FieldTypeString, Description: "Operating division or garage"},
}

var vehicleFields = []SchemaField{
	{Name: "manufacturer", Type: FieldTypeString, Required: true, Description: "Vehicle manufacturer"},
	{Name: "model", Type: FieldTypeString, Required: true, Description: "Vehicle model"},
	{
		Name:        "roster",
		Type:        FieldTypeArray,
		Required:    true,
		Description: "Fleet entries for this vehicle type (may be empty)",
		Items:       &SchemaField{Type: FieldTypeObject, Children: rosterFields},
	},
}

// FleetSchema defines the schema for vehicle fleet files.
var FleetSchema = Schema{
	Name:        "vehicles",
	Description: "Vehicle fleet roster grouped by manufacturer and model",
	Root: SchemaField{
		Type:     FieldTypeObject,
		Required: true,
		Children: []SchemaField{
			{
				Name:        "vehicles",
				Type:        FieldTypeArray,
				Required:    true,
				Description: "Vehicle types in this file (may be empty)",
				Items:       &SchemaField{Type: FieldTypeObject, Children: vehicleFields},
			},
		},
	},
}

// typeLabel describes a schema type for diagnostics.
func typeLabel(t FieldType) string {
	switch t {
	case FieldTypeString:
		return "string"
	case FieldTypeBool:
		return "boolean"
	case FieldTypeUint16:
		return "unsigned 16-bit integer"
	case FieldTypeUint32:
		return "unsigned 32-bit integer"
	case FieldTypeArray:
		return "array"
	case FieldTypeObject:
		return "object"
	default:
		return string(t)
	}
}

// Label describes the field's type, naming the element type of scalar arrays.
func (f SchemaField) Label() string {
	if f.Type == FieldTypeArray && f.Items != nil && f.Items.Type != FieldTypeObject {
		return "array of " + typeLabel(f.Items.Type)
	}
	return typeLabel(f.Type)
}
