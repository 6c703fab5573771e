package validate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fielddoc/fielddoc/pkg/schema"
)

// ConfigValidator checks TOML config files against a config schema. The
// schema document is compiled into an openapi3.Schema once, with its own
// validity verified, so data validation failures can only mean bad data.
type ConfigValidator struct {
	schema   *openapi3.Schema
	location string
}

// NewConfigValidator compiles a config-schema document. Documentation-only
// keys are stripped before compilation, and the compiled schema is
// self-checked so a broken schema fails here, loudly, instead of silently
// accepting bad data.
func NewConfigValidator(ctx context.Context, doc schema.Document) (*ConfigValidator, error) {
	var tree any
	if err := yaml.Unmarshal(doc.Raw(), &tree); err != nil {
		return nil, fmt.Errorf("validate: %s: %w", doc.Location(), err)
	}
	if node, ok := tree.(map[string]any); ok {
		stripSchemaNotes(node)
	}

	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("validate: %s: %w", doc.Location(), err)
	}

	var compiled openapi3.Schema
	if err := compiled.UnmarshalJSON(data); err != nil {
		return nil, fmt.Errorf("validate: %s: %w", doc.Location(), err)
	}
	if err := compiled.Validate(ctx); err != nil {
		return nil, fmt.Errorf("validate: %s: invalid config schema: %w", doc.Location(), err)
	}
	return &ConfigValidator{schema: &compiled, location: doc.Location()}, nil
}

// stripSchemaNotes removes the documentation-only "notes" key from schema
// nodes. Recursion goes through the values of "properties" and through
// "items", never into the properties map itself, so a property that happens
// to be named notes survives.
func stripSchemaNotes(node map[string]any) {
	delete(node, "notes")
	if props, ok := node["properties"].(map[string]any); ok {
		for _, child := range props {
			if childNode, ok := child.(map[string]any); ok {
				stripSchemaNotes(childNode)
			}
		}
	}
	if items, ok := node["items"].(map[string]any); ok {
		stripSchemaNotes(items)
	}
}

// Validate decodes TOML data and walks it against the compiled schema,
// returning one message per violation.
func (v *ConfigValidator) Validate(data []byte) []string {
	var tree map[string]any
	if err := toml.Unmarshal(data, &tree); err != nil {
		return []string{fmt.Sprintf("not a readable TOML file: %v", err)}
	}

	value, err := jsonNormalize(tree)
	if err != nil {
		return []string{err.Error()}
	}

	if err := v.schema.VisitJSON(value, openapi3.MultiErrors()); err != nil {
		return configMessages(err)
	}
	return nil
}

// ValidateFile opens and validates a file, folding the open error into the
// message list so a batch run keeps going.
func (v *ConfigValidator) ValidateFile(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return []string{err.Error()}
	}
	return v.Validate(data)
}

// jsonNormalize runs a value tree through JSON so TOML-specific types
// (int64, time values) land in the shapes the schema walker expects.
func jsonNormalize(tree map[string]any) (any, error) {
	raw, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("validate: encode config data: %w", err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("validate: decode config data: %w", err)
	}
	return value, nil
}

func configMessages(err error) []string {
	var multi openapi3.MultiError
	if !errors.As(err, &multi) {
		return []string{configMessage(err)}
	}
	msgs := make([]string, 0, len(multi))
	for _, item := range multi {
		msgs = append(msgs, configMessage(item))
	}
	// MultiError ordering follows map iteration in places; sort so repeated
	// runs print identical reports.
	sort.Strings(msgs)
	return msgs
}

func configMessage(err error) string {
	var schemaErr *openapi3.SchemaError
	if errors.As(err, &schemaErr) {
		reason := strings.TrimSpace(schemaErr.Reason)
		if key := keyPath(schemaErr.JSONPointer()); key != "" {
			return fmt.Sprintf("key %q: %s", key, reason)
		}
		return reason
	}
	return err.Error()
}

// keyPath renders a JSON pointer as the dotted key syntax TOML authors read:
// output.path, milestone_years[2].
func keyPath(segments []string) string {
	var sb strings.Builder
	for _, segment := range segments {
		if isIndex(segment) {
			sb.WriteString("[" + segment + "]")
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(segment)
	}
	return sb.String()
}

func isIndex(segment string) bool {
	if segment == "" {
		return false
	}
	for _, r := range segment {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
