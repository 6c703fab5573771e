package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fielddoc/fielddoc/pkg/schema"
)

// documentMapping unwraps a parsed root node down to its mapping payload,
// returning nil when the document is not a mapping.
func documentMapping(root *yaml.Node) *yaml.Node {
	node := root
	for node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

// childValue returns the value node for key within a mapping, or nil when the
// key is absent.
func childValue(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if mapping.Content[i].Value == key {
			return resolveAlias(mapping.Content[i+1])
		}
	}
	return nil
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// stringChild reads a scalar string child. The second return reports presence
// so callers can distinguish absent keys from empty values.
func stringChild(doc schema.Document, mapping *yaml.Node, key, path string) (string, bool, error) {
	node := childValue(mapping, key)
	if isNull(node) {
		return "", false, nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return "", false, fmt.Errorf("schema parser: %s: key %q at %s must be a string", doc.Location(), key, orRoot(path))
	}
	return s, true, nil
}

// notesChild decodes an optional notes child via schema.Notes.
func notesChild(doc schema.Document, mapping *yaml.Node, path string) (schema.Notes, error) {
	node := childValue(mapping, "notes")
	if node == nil {
		return schema.Notes{}, nil
	}
	var notes schema.Notes
	if err := node.Decode(&notes); err != nil {
		return schema.Notes{}, fmt.Errorf("schema parser: %s: notes at %s: %w", doc.Location(), orRoot(path), err)
	}
	return notes, nil
}

// requiredChild decodes an optional required list into a lookup set.
func requiredChild(doc schema.Document, mapping *yaml.Node, path string) (map[string]bool, error) {
	node := childValue(mapping, "required")
	if isNull(node) {
		return nil, nil
	}
	var names []string
	if err := node.Decode(&names); err != nil {
		return nil, fmt.Errorf("schema parser: %s: required at %s must be a list of strings", doc.Location(), orRoot(path))
	}
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set, nil
}

// typeName returns the scalar type declared on a mapping, or "".
func typeName(node *yaml.Node) string {
	t := childValue(node, "type")
	if t == nil || t.Kind != yaml.ScalarNode {
		return ""
	}
	return t.Value
}

func orRoot(path string) string {
	if path == "" {
		return "document root"
	}
	return path
}
