package schema

// Shape distinguishes the two schema layouts at parse time so downstream code
// can switch on a tag instead of re-inspecting the raw document.
type Shape string

const (
	// ShapeTable marks schemas with a flat "fields" list describing the
	// columns of a tabular (CSV) data file.
	ShapeTable Shape = "table"
	// ShapeConfig marks schemas with a nested "properties" object describing
	// the keys of a configuration (TOML) data file.
	ShapeConfig Shape = "config"
)

// Constraints carries the validation rules a field may declare. Zero values
// mean the rule is absent.
type Constraints struct {
	Required bool
	Unique   bool
	Enum     []any
	Minimum  *float64
	Maximum  *float64
	Pattern  string
}

// FieldSpec is one column of a table schema or one key of a config schema,
// normalized to a single record shape.
type FieldSpec struct {
	Name        string
	Type        string
	Description string
	Notes       Notes

	// Default holds the declared default value. HasDefault tracks presence
	// separately so falsy defaults such as 0 or false survive normalization.
	Default    any
	HasDefault bool

	Constraints Constraints
}

// Subtable is a config-schema property of type object: a named group of
// fields one level below the root. Deeper nesting is rejected at parse time.
type Subtable struct {
	Name        string
	Description string
	Notes       Notes
	Fields      []FieldSpec
}

// Definition is the canonical, normalized form of one schema document. Field
// and subtable order follows the document order of the source exactly.
type Definition struct {
	// Name is the logical stem shared by the schema file and the data file it
	// describes (agents.yaml -> agents).
	Name        string
	Title       string
	Description string
	Notes       Notes
	Shape       Shape

	// Fields holds the columns of a table schema, or the scalar top-level
	// properties of a config schema.
	Fields []FieldSpec

	// Subtables is populated for config schemas only.
	Subtables []Subtable
}

// Field looks up a field by name across the top level.
func (d *Definition) Field(name string) (FieldSpec, bool) {
	for _, f := range d.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldSpec{}, false
}

// FieldNames returns the top-level field names in declaration order.
func (d *Definition) FieldNames() []string {
	if len(d.Fields) == 0 {
		return nil
	}
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}
