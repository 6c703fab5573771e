package schema

import "fmt"

// MissingKeyError reports a required key absent from a schema document. Path
// narrows the location within the document when the key belongs to a nested
// element, e.g. fields[2] or properties.log_level.
type MissingKeyError struct {
	Location string
	Path     string
	Key      string
}

func (e *MissingKeyError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("schema: %s: missing required key %q at %s", e.Location, e.Key, e.Path)
	}
	return fmt.Sprintf("schema: %s: missing required key %q", e.Location, e.Key)
}

// NestingError reports a config-schema property nested below a subtable.
// Exactly one level of subtables is supported.
type NestingError struct {
	Location string
	Path     string
}

func (e *NestingError) Error() string {
	return fmt.Sprintf("schema: %s: tables nested below %s are not supported", e.Location, e.Path)
}

// ShapeError reports a document whose structure does not match either schema
// layout, or contradicts the layout it declares.
type ShapeError struct {
	Location string
	Reason   string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("schema: %s: %s", e.Location, e.Reason)
}
