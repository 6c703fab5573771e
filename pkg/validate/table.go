package validate

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fielddoc/fielddoc/pkg/schema"
)

// castFunc parses one cell. It reports the numeric value for range checks
// when the type is numeric, and whether the cell parses at all.
type castFunc func(cell string) (num float64, numeric bool, ok bool)

type compiledField struct {
	spec      schema.FieldSpec
	cast      castFunc
	castLabel string
	pattern   *regexp.Regexp
	enum      []string
	enumSet   map[string]struct{}
}

// TableValidator checks CSV data files against a table schema. Compilation
// happens once up front so batch runs do not re-parse patterns and enums per
// file.
type TableValidator struct {
	fields []compiledField
}

// NewTableValidator compiles a table Definition into a validator. Unknown
// field types, unparsable patterns and range constraints on non-numeric
// fields are authoring mistakes and fail here rather than per row.
func NewTableValidator(def *schema.Definition) (*TableValidator, error) {
	if def == nil {
		return nil, fmt.Errorf("validate: definition is nil")
	}
	if def.Shape != schema.ShapeTable {
		return nil, fmt.Errorf("validate: %s is not a table schema", def.Name)
	}

	v := &TableValidator{fields: make([]compiledField, 0, len(def.Fields))}
	for _, spec := range def.Fields {
		field, err := compileField(spec)
		if err != nil {
			return nil, err
		}
		v.fields = append(v.fields, field)
	}
	return v, nil
}

func compileField(spec schema.FieldSpec) (compiledField, error) {
	field := compiledField{spec: spec}

	numeric := false
	switch spec.Type {
	case "", "string":
	case "integer":
		field.castLabel = "an integer"
		field.cast = castInteger
		numeric = true
	case "number":
		field.castLabel = "a number"
		field.cast = castNumber
		numeric = true
	case "boolean":
		field.castLabel = "a boolean"
		field.cast = castBoolean
	case "year":
		field.castLabel = "a year"
		field.cast = castYear
		numeric = true
	case "date":
		field.castLabel = "a date (YYYY-MM-DD)"
		field.cast = castDate
	default:
		return compiledField{}, fmt.Errorf("validate: field %q: unsupported type %q", spec.Name, spec.Type)
	}

	cons := spec.Constraints
	if (cons.Minimum != nil || cons.Maximum != nil) && !numeric {
		return compiledField{}, fmt.Errorf("validate: field %q: minimum/maximum need a numeric type, got %q", spec.Name, spec.Type)
	}
	if cons.Pattern != "" {
		// Anchored: the whole cell must match, not a substring.
		re, err := regexp.Compile("^(?:" + cons.Pattern + ")$")
		if err != nil {
			return compiledField{}, fmt.Errorf("validate: field %q: pattern %q: %w", spec.Name, cons.Pattern, err)
		}
		field.pattern = re
	}
	if len(cons.Enum) > 0 {
		field.enum = make([]string, 0, len(cons.Enum))
		field.enumSet = make(map[string]struct{}, len(cons.Enum))
		for _, member := range cons.Enum {
			rendered := fmt.Sprintf("%v", member)
			field.enum = append(field.enum, rendered)
			field.enumSet[rendered] = struct{}{}
		}
	}
	return field, nil
}

func castInteger(cell string) (float64, bool, bool) {
	n, err := strconv.ParseInt(cell, 10, 64)
	return float64(n), true, err == nil
}

func castNumber(cell string) (float64, bool, bool) {
	f, err := strconv.ParseFloat(cell, 64)
	return f, true, err == nil
}

func castBoolean(cell string) (float64, bool, bool) {
	switch strings.ToLower(cell) {
	case "true", "false", "1", "0":
		return 0, false, true
	}
	return 0, false, false
}

func castYear(cell string) (float64, bool, bool) {
	n, err := strconv.ParseInt(cell, 10, 64)
	if err != nil || n < 1 || n > 9999 {
		return 0, true, false
	}
	return float64(n), true, true
}

func castDate(cell string) (float64, bool, bool) {
	_, err := time.Parse("2006-01-02", cell)
	return 0, false, err == nil
}

// Validate reads CSV data and returns every problem found, ordered by row and
// then by schema field order. Header problems short-circuit the row checks:
// per-cell output against a misshapen table is noise.
func (v *TableValidator) Validate(r io.Reader) []string {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return []string{fmt.Sprintf("not a readable CSV file: %v", err)}
	}
	if len(records) == 0 {
		return []string{"missing header row"}
	}

	header := records[0]
	msgs, index := v.checkHeader(header)
	if len(msgs) > 0 {
		return msgs
	}

	uniqueSeen := make(map[string]map[string]struct{})
	for i, record := range records[1:] {
		row := i + 2
		if len(record) != len(header) {
			msgs = append(msgs, fmt.Sprintf("row %d: expected %d fields, got %d", row, len(header), len(record)))
			continue
		}
		for _, field := range v.fields {
			cell := record[index[field.spec.Name]]
			msgs = append(msgs, v.checkCell(field, row, cell, uniqueSeen)...)
		}
	}
	return msgs
}

// ValidateFile opens and validates a file, folding the open error into the
// message list so a batch run keeps going.
func (v *TableValidator) ValidateFile(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return []string{err.Error()}
	}
	defer f.Close()
	return v.Validate(f)
}

// checkHeader matches the header row against the schema and returns the
// column position of every field.
func (v *TableValidator) checkHeader(header []string) ([]string, map[string]int) {
	var msgs []string

	index := make(map[string]int, len(header))
	for pos, label := range header {
		if _, dup := index[label]; dup {
			msgs = append(msgs, fmt.Sprintf("header: duplicate field %q", label))
			continue
		}
		index[label] = pos
	}

	known := make(map[string]struct{}, len(v.fields))
	for _, field := range v.fields {
		known[field.spec.Name] = struct{}{}
		if _, ok := index[field.spec.Name]; !ok {
			msgs = append(msgs, fmt.Sprintf("header: missing field %q", field.spec.Name))
		}
	}
	for _, label := range header {
		if _, ok := known[label]; !ok {
			msgs = append(msgs, fmt.Sprintf("header: unknown field %q", label))
		}
	}

	if len(msgs) > 0 {
		return msgs, nil
	}
	return nil, index
}

func (v *TableValidator) checkCell(field compiledField, row int, cell string, uniqueSeen map[string]map[string]struct{}) []string {
	name := field.spec.Name
	cons := field.spec.Constraints

	if cell == "" {
		if cons.Required {
			return []string{fmt.Sprintf("row %d, field %q: a value is required", row, name)}
		}
		return nil
	}

	var msgs []string
	num := 0.0
	numeric := false
	if field.cast != nil {
		var ok bool
		num, numeric, ok = field.cast(cell)
		if !ok {
			return []string{fmt.Sprintf("row %d, field %q: %q is not %s", row, name, cell, field.castLabel)}
		}
	}

	if field.enumSet != nil {
		if _, ok := field.enumSet[cell]; !ok {
			msgs = append(msgs, fmt.Sprintf("row %d, field %q: %q is not one of %s", row, name, cell, strings.Join(field.enum, ", ")))
		}
	}
	if numeric {
		if cons.Minimum != nil && num < *cons.Minimum {
			msgs = append(msgs, fmt.Sprintf("row %d, field %q: %q is below the minimum %s", row, name, cell, formatBound(*cons.Minimum)))
		}
		if cons.Maximum != nil && num > *cons.Maximum {
			msgs = append(msgs, fmt.Sprintf("row %d, field %q: %q is above the maximum %s", row, name, cell, formatBound(*cons.Maximum)))
		}
	}
	if field.pattern != nil && !field.pattern.MatchString(cell) {
		msgs = append(msgs, fmt.Sprintf("row %d, field %q: %q does not match %q", row, name, cell, cons.Pattern))
	}
	if cons.Unique {
		seen := uniqueSeen[name]
		if seen == nil {
			seen = make(map[string]struct{})
			uniqueSeen[name] = seen
		}
		if _, dup := seen[cell]; dup {
			msgs = append(msgs, fmt.Sprintf("row %d, field %q: duplicate value %q", row, name, cell))
		}
		seen[cell] = struct{}{}
	}
	return msgs
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
