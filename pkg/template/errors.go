package template

import "fmt"

// MissingVarError reports a template rendered without one of its declared
// context variables. Failing loudly here beats shipping a document with a
// silently blank section.
type MissingVarError struct {
	Template string
	Var      string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("template: %s: missing required variable %q", e.Template, e.Var)
}
