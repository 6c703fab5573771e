package schema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Notes holds free-form author notes attached to a schema, a subtable, or a
// field. YAML sources may supply either a single string or a list of strings;
// the distinction is preserved because renderers treat the two differently
// (prose vs bullet items).
type Notes struct {
	items  []string
	listed bool
}

// NoteString builds Notes from a single prose string.
func NoteString(s string) Notes {
	if s == "" {
		return Notes{}
	}
	return Notes{items: []string{s}}
}

// NoteList builds Notes from explicit bullet items.
func NoteList(items ...string) Notes {
	return Notes{items: append([]string(nil), items...), listed: true}
}

// IsEmpty reports whether no notes were supplied.
func (n Notes) IsEmpty() bool {
	return len(n.items) == 0
}

// Equal reports whether two Notes carry the same entries in the same form.
func (n Notes) Equal(o Notes) bool {
	if n.listed != o.listed || len(n.items) != len(o.items) {
		return false
	}
	for i := range n.items {
		if n.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// IsList reports whether the source supplied a list rather than a bare
// string. An empty list still counts as listed.
func (n Notes) IsList() bool {
	return n.listed
}

// Items returns a copy of the note entries.
func (n Notes) Items() []string {
	if len(n.items) == 0 {
		return nil
	}
	return append([]string(nil), n.items...)
}

// UnmarshalYAML accepts a scalar string, a sequence of strings, or null.
func (n *Notes) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*n = Notes{}
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return fmt.Errorf("schema: notes must be a string or a list of strings (line %d)", node.Line)
		}
		*n = NoteString(s)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return fmt.Errorf("schema: notes list entries must be strings (line %d)", node.Line)
		}
		*n = NoteList(items...)
		return nil
	case yaml.AliasNode:
		return n.UnmarshalYAML(node.Alias)
	default:
		return fmt.Errorf("schema: notes must be a string or a list of strings (line %d)", node.Line)
	}
}
