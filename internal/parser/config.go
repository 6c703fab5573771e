package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fielddoc/fielddoc/pkg/schema"
)

func (p *Parser) parseConfig(doc schema.Document, mapping, propsNode *yaml.Node) (*schema.Definition, error) {
	if err := p.checkKeys(doc, mapping, "", configKeys); err != nil {
		return nil, err
	}

	def := &schema.Definition{Name: doc.Stem(), Shape: schema.ShapeConfig}

	typ, present, err := stringChild(doc, mapping, "type", "")
	if err != nil {
		return nil, err
	}
	if present && typ != "object" {
		return nil, &schema.ShapeError{
			Location: doc.Location(),
			Reason:   fmt.Sprintf("config schema root must have type \"object\", got %q", typ),
		}
	}

	// Top-level description stays optional for config schemas: the heading
	// and per-key rows carry the documentation.
	if def.Title, _, err = stringChild(doc, mapping, "title", ""); err != nil {
		return nil, err
	}
	if def.Description, _, err = stringChild(doc, mapping, "description", ""); err != nil {
		return nil, err
	}
	if def.Notes, err = notesChild(doc, mapping, ""); err != nil {
		return nil, err
	}

	required, err := requiredChild(doc, mapping, "")
	if err != nil {
		return nil, err
	}

	if propsNode.Kind != yaml.MappingNode {
		return nil, &schema.ShapeError{Location: doc.Location(), Reason: `"properties" must be a mapping`}
	}
	for i := 0; i+1 < len(propsNode.Content); i += 2 {
		name := propsNode.Content[i].Value
		value := resolveAlias(propsNode.Content[i+1])
		if value == nil || value.Kind != yaml.MappingNode {
			return nil, &schema.ShapeError{
				Location: doc.Location(),
				Reason:   fmt.Sprintf("property %q must be a mapping", name),
			}
		}

		if typeName(value) == "object" {
			sub, err := p.parseSubtable(doc, name, value)
			if err != nil {
				return nil, err
			}
			def.Subtables = append(def.Subtables, sub)
			continue
		}

		field, err := p.parseProperty(doc, name, value, name, required[name])
		if err != nil {
			return nil, err
		}
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

// parseSubtable handles a property of type object: one level of nesting is
// supported, anything deeper is rejected.
func (p *Parser) parseSubtable(doc schema.Document, name string, node *yaml.Node) (schema.Subtable, error) {
	pathLabel := fmt.Sprintf("property %q", name)
	if err := p.checkKeys(doc, node, pathLabel, propertyKeys); err != nil {
		return schema.Subtable{}, err
	}

	sub := schema.Subtable{Name: name}

	var err error
	if sub.Description, _, err = stringChild(doc, node, "description", pathLabel); err != nil {
		return schema.Subtable{}, err
	}
	if sub.Notes, err = notesChild(doc, node, pathLabel); err != nil {
		return schema.Subtable{}, err
	}

	required, err := requiredChild(doc, node, pathLabel)
	if err != nil {
		return schema.Subtable{}, err
	}

	subProps := childValue(node, "properties")
	if subProps == nil {
		return schema.Subtable{}, &schema.MissingKeyError{Location: doc.Location(), Path: pathLabel, Key: "properties"}
	}
	if subProps.Kind != yaml.MappingNode {
		return schema.Subtable{}, &schema.ShapeError{
			Location: doc.Location(),
			Reason:   fmt.Sprintf("properties at %s must be a mapping", pathLabel),
		}
	}

	for i := 0; i+1 < len(subProps.Content); i += 2 {
		childName := subProps.Content[i].Value
		value := resolveAlias(subProps.Content[i+1])
		dotted := name + "." + childName
		if value == nil || value.Kind != yaml.MappingNode {
			return schema.Subtable{}, &schema.ShapeError{
				Location: doc.Location(),
				Reason:   fmt.Sprintf("property %q must be a mapping", dotted),
			}
		}
		if typeName(value) == "object" {
			return schema.Subtable{}, &schema.NestingError{
				Location: doc.Location(),
				Path:     fmt.Sprintf("property %q", dotted),
			}
		}

		field, err := p.parseProperty(doc, childName, value, dotted, required[childName])
		if err != nil {
			return schema.Subtable{}, err
		}
		sub.Fields = append(sub.Fields, field)
	}
	return sub, nil
}

// parseProperty normalizes one config key. Constraint keywords sit inline on
// the property, JSON Schema style, rather than under a constraints mapping.
func (p *Parser) parseProperty(doc schema.Document, name string, node *yaml.Node, dotted string, required bool) (schema.FieldSpec, error) {
	pathLabel := fmt.Sprintf("property %q", dotted)
	if err := p.checkKeys(doc, node, pathLabel, propertyKeys); err != nil {
		return schema.FieldSpec{}, err
	}

	field := schema.FieldSpec{Name: name}
	field.Constraints.Required = required

	var (
		present bool
		err     error
	)
	field.Description, present, err = stringChild(doc, node, "description", pathLabel)
	if err != nil {
		return schema.FieldSpec{}, err
	}
	if !present && p.options.RequireDescriptions {
		return schema.FieldSpec{}, &schema.MissingKeyError{Location: doc.Location(), Path: pathLabel, Key: "description"}
	}

	if field.Type, _, err = stringChild(doc, node, "type", pathLabel); err != nil {
		return schema.FieldSpec{}, err
	}
	if field.Notes, err = notesChild(doc, node, pathLabel); err != nil {
		return schema.FieldSpec{}, err
	}

	if defNode := childValue(node, "default"); defNode != nil {
		var value any
		if err := defNode.Decode(&value); err != nil {
			return schema.FieldSpec{}, fmt.Errorf("schema parser: %s: default at %s: %w", doc.Location(), pathLabel, err)
		}
		field.Default = value
		field.HasDefault = true
	}

	if enumNode := childValue(node, "enum"); enumNode != nil {
		if err := enumNode.Decode(&field.Constraints.Enum); err != nil {
			return schema.FieldSpec{}, fmt.Errorf("schema parser: %s: enum at %s: %w", doc.Location(), pathLabel, err)
		}
	}
	if minNode := childValue(node, "minimum"); minNode != nil {
		var f float64
		if err := minNode.Decode(&f); err != nil {
			return schema.FieldSpec{}, fmt.Errorf("schema parser: %s: minimum at %s: %w", doc.Location(), pathLabel, err)
		}
		field.Constraints.Minimum = &f
	}
	if maxNode := childValue(node, "maximum"); maxNode != nil {
		var f float64
		if err := maxNode.Decode(&f); err != nil {
			return schema.FieldSpec{}, fmt.Errorf("schema parser: %s: maximum at %s: %w", doc.Location(), pathLabel, err)
		}
		field.Constraints.Maximum = &f
	}
	if patNode := childValue(node, "pattern"); patNode != nil {
		if err := patNode.Decode(&field.Constraints.Pattern); err != nil {
			return schema.FieldSpec{}, fmt.Errorf("schema parser: %s: pattern at %s: %w", doc.Location(), pathLabel, err)
		}
	}
	return field, nil
}
