package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fielddoc/fielddoc/pkg/schema"
)

// Key sets consulted when ParserOptions.StrictKeys is enabled. Everything
// outside these sets is treated as an authoring mistake.
var (
	tableKeys    = keySet("description", "notes", "fields", "title")
	fieldKeys    = keySet("name", "type", "description", "notes", "default", "constraints")
	configKeys   = keySet("type", "title", "description", "notes", "properties", "required")
	propertyKeys = keySet("type", "description", "notes", "default", "enum", "minimum", "maximum", "pattern", "properties", "required")
)

func keySet(keys ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}

// Parser implements schema.Parser over yaml.v3 document nodes. Mapping pairs
// are walked in document order, so the resulting Definition preserves the
// author's field ordering exactly.
type Parser struct {
	options schema.ParserOptions
}

// Ensure the implementation satisfies the public interface.
var _ schema.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options schema.ParserOptions) schema.Parser {
	return &Parser{options: options}
}

// Parse normalizes a schema document into a Definition. The document shape is
// detected here: a "fields" sequence marks a table schema, a "properties"
// mapping marks a config schema.
func (p *Parser) Parse(ctx context.Context, doc schema.Document) (*schema.Definition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("schema parser: document payload is empty")
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("schema parser: %s: %w", doc.Location(), err)
	}
	mapping := documentMapping(&root)
	if mapping == nil {
		return nil, &schema.ShapeError{Location: doc.Location(), Reason: "document root must be a mapping"}
	}

	fieldsNode := childValue(mapping, "fields")
	propsNode := childValue(mapping, "properties")
	switch {
	case fieldsNode != nil && propsNode != nil:
		return nil, &schema.ShapeError{
			Location: doc.Location(),
			Reason:   `document declares both "fields" and "properties"`,
		}
	case fieldsNode != nil:
		return p.parseTable(doc, mapping, fieldsNode)
	case propsNode != nil:
		return p.parseConfig(doc, mapping, propsNode)
	default:
		return nil, &schema.MissingKeyError{Location: doc.Location(), Key: "fields"}
	}
}

func (p *Parser) parseTable(doc schema.Document, mapping, fieldsNode *yaml.Node) (*schema.Definition, error) {
	if err := p.checkKeys(doc, mapping, "", tableKeys); err != nil {
		return nil, err
	}

	def := &schema.Definition{Name: doc.Stem(), Shape: schema.ShapeTable}

	description, present, err := stringChild(doc, mapping, "description", "")
	if err != nil {
		return nil, err
	}
	if !present && p.options.RequireDescriptions {
		return nil, &schema.MissingKeyError{Location: doc.Location(), Key: "description"}
	}
	def.Description = description

	def.Title, _, err = stringChild(doc, mapping, "title", "")
	if err != nil {
		return nil, err
	}
	if def.Notes, err = notesChild(doc, mapping, ""); err != nil {
		return nil, err
	}

	if fieldsNode.Kind != yaml.SequenceNode {
		return nil, &schema.ShapeError{Location: doc.Location(), Reason: `"fields" must be a sequence`}
	}
	seen := make(map[string]struct{}, len(fieldsNode.Content))
	for idx, item := range fieldsNode.Content {
		item = resolveAlias(item)
		path := fmt.Sprintf("fields[%d]", idx)
		if item == nil || item.Kind != yaml.MappingNode {
			return nil, &schema.ShapeError{Location: doc.Location(), Reason: path + " must be a mapping"}
		}
		field, err := p.parseField(doc, item, path)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[field.Name]; dup {
			return nil, &schema.ShapeError{
				Location: doc.Location(),
				Reason:   fmt.Sprintf("duplicate field %q", field.Name),
			}
		}
		seen[field.Name] = struct{}{}
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

func (p *Parser) parseField(doc schema.Document, node *yaml.Node, path string) (schema.FieldSpec, error) {
	if err := p.checkKeys(doc, node, path, fieldKeys); err != nil {
		return schema.FieldSpec{}, err
	}

	name, present, err := stringChild(doc, node, "name", path)
	if err != nil {
		return schema.FieldSpec{}, err
	}
	if !present || strings.TrimSpace(name) == "" {
		return schema.FieldSpec{}, &schema.MissingKeyError{Location: doc.Location(), Path: path, Key: "name"}
	}
	fieldPath := fmt.Sprintf("field %q", name)
	field := schema.FieldSpec{Name: name}

	field.Description, present, err = stringChild(doc, node, "description", fieldPath)
	if err != nil {
		return schema.FieldSpec{}, err
	}
	if !present && p.options.RequireDescriptions {
		return schema.FieldSpec{}, &schema.MissingKeyError{Location: doc.Location(), Path: fieldPath, Key: "description"}
	}

	field.Type, _, err = stringChild(doc, node, "type", fieldPath)
	if err != nil {
		return schema.FieldSpec{}, err
	}
	if field.Notes, err = notesChild(doc, node, fieldPath); err != nil {
		return schema.FieldSpec{}, err
	}
	if defNode := childValue(node, "default"); defNode != nil {
		var value any
		if err := defNode.Decode(&value); err != nil {
			return schema.FieldSpec{}, fmt.Errorf("schema parser: %s: default at %s: %w", doc.Location(), fieldPath, err)
		}
		field.Default = value
		field.HasDefault = true
	}

	if consNode := childValue(node, "constraints"); consNode != nil {
		cons, err := p.parseConstraints(doc, consNode, fieldPath)
		if err != nil {
			return schema.FieldSpec{}, err
		}
		field.Constraints = cons
	}
	return field, nil
}

func (p *Parser) parseConstraints(doc schema.Document, node *yaml.Node, path string) (schema.Constraints, error) {
	if node.Kind != yaml.MappingNode {
		return schema.Constraints{}, &schema.ShapeError{
			Location: doc.Location(),
			Reason:   fmt.Sprintf("constraints at %s must be a mapping", path),
		}
	}

	var cons schema.Constraints
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		value := resolveAlias(node.Content[i+1])

		var err error
		switch key {
		case "required":
			err = value.Decode(&cons.Required)
		case "unique":
			err = value.Decode(&cons.Unique)
		case "enum":
			err = value.Decode(&cons.Enum)
		case "minimum":
			var f float64
			if err = value.Decode(&f); err == nil {
				cons.Minimum = &f
			}
		case "maximum":
			var f float64
			if err = value.Decode(&f); err == nil {
				cons.Maximum = &f
			}
		case "pattern":
			err = value.Decode(&cons.Pattern)
		default:
			if p.options.StrictKeys {
				return schema.Constraints{}, fmt.Errorf("schema parser: %s: unsupported constraint %q at %s", doc.Location(), key, path)
			}
		}
		if err != nil {
			return schema.Constraints{}, fmt.Errorf("schema parser: %s: constraint %q at %s: %w", doc.Location(), key, path, err)
		}
	}
	return cons, nil
}

func (p *Parser) checkKeys(doc schema.Document, mapping *yaml.Node, path string, allowed map[string]struct{}) error {
	if !p.options.StrictKeys {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		if _, ok := allowed[key]; !ok {
			where := path
			if where == "" {
				where = "document root"
			}
			return fmt.Errorf("schema parser: %s: unsupported key %q at %s", doc.Location(), key, where)
		}
	}
	return nil
}
