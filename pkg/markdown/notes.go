package markdown

import (
	"fmt"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/fielddoc/fielddoc/pkg/schema"
)

// AddFullStop trims trailing whitespace and appends a full stop unless the
// text is empty or already ends with one.
func AddFullStop(s string) string {
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	if s == "" || strings.HasSuffix(s, ".") {
		return s
	}
	return s + "."
}

// FormatNotes renders the standalone notes block shown under a file heading:
// one bullet per entry, each ending in a full stop. A bare string note
// becomes a single bullet. Empty notes render as the empty string.
func FormatNotes(notes schema.Notes) string {
	items := notes.Items()
	if len(items) == 0 {
		return ""
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "- "+AddFullStop(item))
	}
	return strings.Join(lines, "\n")
}

// RenderScalar renders a value the way it appears in a YAML document, flow
// style, on a single line. Default values keep the syntax their authors
// wrote: 0 stays 0, true stays true, lists come out as [a, b].
func RenderScalar(v any) (string, error) {
	if v == nil {
		return "null", nil
	}

	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return "", fmt.Errorf("markdown: render scalar: %w", err)
	}
	setFlow(&node)

	out, err := yaml.Marshal(&node)
	if err != nil {
		return "", fmt.Errorf("markdown: render scalar: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func setFlow(node *yaml.Node) {
	node.Style = yaml.FlowStyle
	for _, child := range node.Content {
		setFlow(child)
	}
}
